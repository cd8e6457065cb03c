package domain

// ConfigReader интерфейс для чтения конфигурации
type ConfigReader interface {
	ReadConfig(path string) (*Config, error)
}

// PlanWriter интерфейс для записи плана запусков
type PlanWriter interface {
	WritePlan(filename string, lines []string) error
}
