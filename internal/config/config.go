// Package config defines the fieldops configuration file format and its
// validation. Configuration is YAML with environment-variable overrides for
// the values that differ per deployment.
package config

// FileConfig is the root of the YAML configuration file.
type FileConfig struct {
	Services    ServicesSection    `yaml:"services"`
	Auth        AuthSection        `yaml:"auth"`
	Fixtures    FixturesSection    `yaml:"fixtures"`
	StatusBoard StatusBoardSection `yaml:"statusboard"`
}

// ServicesSection configures the three mock REST services.
type ServicesSection struct {
	Customer    ServiceSection `yaml:"customer"`
	Appointment ServiceSection `yaml:"appointment"`
	Technician  ServiceSection `yaml:"technician"`
}

// ServiceSection configures one HTTP service.
type ServiceSection struct {
	Addr string `yaml:"addr"`
}

// AuthSection configures the demo API-key scheme. An empty key disables auth.
type AuthSection struct {
	APIKey string `yaml:"api_key"`
}

// FixturesSection points at an optional directory of seed JSON files.
// Empty means the embedded defaults.
type FixturesSection struct {
	Dir string `yaml:"dir"`
}

// StatusBoardSection configures the upgrade demo page.
type StatusBoardSection struct {
	Addr          string `yaml:"addr"`
	Namespace     string `yaml:"namespace"`
	LabelSelector string `yaml:"label_selector"`
	PublicURL     string `yaml:"public_url"`

	// PodName and NodeName come from the downward API, not the file.
	PodName  string `yaml:"-"`
	NodeName string `yaml:"-"`
}

// Default returns the configuration used when no file is given: the
// conventional demo ports with auth disabled and embedded fixtures.
func Default() FileConfig {
	return FileConfig{
		Services: ServicesSection{
			Customer:    ServiceSection{Addr: ":8001"},
			Appointment: ServiceSection{Addr: ":8002"},
			Technician:  ServiceSection{Addr: ":8003"},
		},
		StatusBoard: StatusBoardSection{
			Addr:          ":8080",
			Namespace:     "default",
			LabelSelector: "app=eks-demo-app",
		},
	}
}
