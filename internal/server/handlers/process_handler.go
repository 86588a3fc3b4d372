package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/epd-dashboard/internal/config"
	"github.com/mamadbah2/epd-dashboard/internal/domain/models"
	"github.com/mamadbah2/epd-dashboard/internal/loader"
	"github.com/mamadbah2/epd-dashboard/internal/server/views"
	"github.com/mamadbah2/epd-dashboard/internal/service/resources"
	"github.com/mamadbah2/epd-dashboard/pkg/clients/epdapi"
)

const reportYears = 5

// ProcessHandler serves the manufacturing step pages.
type ProcessHandler struct {
	pages
	now func() time.Time
}

// NewProcessHandler constructs the process pages handler.
func NewProcessHandler(svc *resources.Set, cfg config.SessionConfig, logger *zap.Logger) *ProcessHandler {
	return &ProcessHandler{pages: newPages(svc, cfg, logger), now: time.Now}
}

// Home opens the first step, or shows the empty list when there is none.
func (h *ProcessHandler) Home(c *gin.Context) {
	flash, n := h.notices(c)
	snap := loader.Processes(h.svc.Processes.List, n).Load(c.Request.Context(), loader.None{})

	if len(snap.Data) > 0 {
		h.redirectFound(c, "/processes/"+url.PathEscape(snap.Data[0].ID), flash)
		return
	}

	h.render(c, http.StatusOK, views.PageProcesses, views.Page{
		Title:     "Manufacturing Steps",
		Processes: loaded(snap.Data),
		Content:   views.ProcessesView{Processes: snap.Data},
	}, flash, n)
}

// List shows every process step.
func (h *ProcessHandler) List(c *gin.Context) {
	flash, n := h.notices(c)
	snap := loader.Processes(h.svc.Processes.List, n).Load(c.Request.Context(), loader.None{})

	h.render(c, http.StatusOK, views.PageProcesses, views.Page{
		Title:     "Manufacturing Steps",
		Subtitle:  "All steps of the EPD workflow, in order.",
		Processes: loaded(snap.Data),
		Content:   views.ProcessesView{Processes: snap.Data},
	}, flash, n)
}

// Detail shows one process with its meter inputs and its annual efficiency
// report for the requested year.
func (h *ProcessHandler) Detail(c *gin.Context) {
	flash, n := h.notices(c)
	ctx := c.Request.Context()
	processID := c.Param("processId")
	year := h.reportYear(c.Query("year"))

	process := loader.Process(h.svc.Processes.Get, n).Load(ctx, processID)
	inputs := loader.ProcessInputs(h.svc.Relationships.MetersOnProcesses, n).Load(ctx, processID)
	efficiency := loader.AnnualEfficiency(h.svc.Reports.AnnualEfficiency, n).Load(ctx, loader.EfficiencyParams{
		Year:      year,
		ProcessID: processID,
	})

	status := http.StatusOK
	page := views.Page{Title: "Process not found"}
	if process.Data != nil {
		page.Title = process.Data.Label()
		page.Subtitle = fmt.Sprintf("Annual Report for %d", year)
	} else if epdapi.IsNotFound(process.Err) {
		status = http.StatusNotFound
	}

	page.Content = views.ProcessView{
		Process:    process.Data,
		Inputs:     inputs.Data,
		Efficiency: efficiency.Data,
		Summary:    models.SummarizeEfficiency(efficiency.Data),
		Year:       year,
		Years:      h.yearOptions(year),
	}
	h.render(c, status, views.PageProcess, page, flash, n)
}

func (h *ProcessHandler) reportYear(raw string) int {
	if year, err := strconv.Atoi(raw); err == nil && year > 0 {
		return year
	}
	return h.now().Year()
}

// yearOptions lists the recent years, newest first, always including selected.
func (h *ProcessHandler) yearOptions(selected int) []int {
	current := h.now().Year()
	years := make([]int, 0, reportYears+1)
	for y := current; y > current-reportYears; y-- {
		years = append(years, y)
	}
	if selected > current || selected <= current-reportYears {
		years = append(years, selected)
	}
	return years
}

// loaded marks the sidebar as already fetched, even when the fetch failed,
// so render does not ask the backend twice.
func loaded(processes []models.Process) []models.Process {
	if processes == nil {
		return []models.Process{}
	}
	return processes
}
