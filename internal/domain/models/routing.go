package models

// Routing is an operation/work-center step for producing a product.
type Routing struct {
	ID                  string   `json:"id"`
	MaterialCode        *string  `json:"materialCode"`
	MaterialDescription *string  `json:"materialDescription"`
	OperationNumber     *string  `json:"operationNumber"`
	WorkCenterCode      *string  `json:"workCenterCode"`
	Description         *string  `json:"description"`
	BaseQuantity        float64  `json:"baseQuantity"`
	SetupMachine        float64  `json:"setupMachine"`
	SetupOperator       float64  `json:"setupOperator"`
	MachineHours        float64  `json:"machineHours"`
	OperatorHours       float64  `json:"operatorHours"`
	RoutingGroup        *string  `json:"routingGroup"`
	GroupCounter        *string  `json:"groupCounter"`
	EmployeeCount       *float64 `json:"employeeCount"`
	IsPrimary           bool     `json:"isPrimary"`
	ProductID           string   `json:"productId"`
	WorkCenterID        *string  `json:"workCenterId"`
}

// RoutingImportResult is what the backend reports after replacing a product's routings from a file.
type RoutingImportResult struct {
	Message  string `json:"message"`
	Imported int    `json:"imported"`
}
