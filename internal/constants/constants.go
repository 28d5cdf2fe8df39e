package constants

const (
	AppName   = "teller"
	EnvPrefix = "TELLER"

	RunUsage = "Usage: teller <num_producers> <num_consumers> <buffer_capacity> <ledger_file>"
)

const (
	DefaultAccounts     = 10
	DefaultLedgerCount  = 100
	DefaultHistoryLimit = 20
	DefaultLedgerSeed   = 377
)

const (
	LogMaxSizeMB  = 10
	LogMaxAgeDays = 7
	LogMaxBackups = 3
)
