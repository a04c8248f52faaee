package observability

const (
	MUsecaseRequests MetricKey = "usecase_requests_total"
	MUsecaseDuration MetricKey = "usecase_duration_seconds"
	MInventoryItems  MetricKey = "inventory_items"
	MInventoryUnits  MetricKey = "inventory_units"
	MCommandRuns     MetricKey = "cli_commands_total"
	MCommandDuration MetricKey = "cli_command_duration_seconds"
)
