// Package resources holds one thin typed facade per EPD backend resource. Each
// method is a single call through the epdapi client with a fixed path and method.
package resources

import (
	"net/url"
	"strconv"

	"github.com/mamadbah2/epd-dashboard/pkg/clients/epdapi"
)

// ListLimit is the page size requested by list endpoints.
const ListLimit = 100

func limitQuery() map[string]string {
	return map[string]string{"limit": strconv.Itoa(ListLimit)}
}

func seg(value string) string {
	return url.PathEscape(value)
}

// Set bundles every facade over one client.
type Set struct {
	Auth          *AuthService
	Processes     *ProcessService
	Products      *ProductService
	Components    *ComponentService
	Routings      *RoutingService
	Relationships *RelationshipService
	Reports       *ReportService
}

// NewSet wires all facades to client.
func NewSet(client *epdapi.Client) *Set {
	return &Set{
		Auth:          NewAuthService(client),
		Processes:     NewProcessService(client),
		Products:      NewProductService(client),
		Components:    NewComponentService(client),
		Routings:      NewRoutingService(client),
		Relationships: NewRelationshipService(client),
		Reports:       NewReportService(client),
	}
}
