package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the whole configuration.
//
// Ensures:
//   - Every service address is a usable listen address
//   - The API key, when set, is at least 8 characters
//   - The status board has a namespace and label selector
func (c FileConfig) Validate() error {
	return Validate(c)
}

// Validate checks cfg. See FileConfig.Validate.
func Validate(cfg FileConfig) error {
	for name, addr := range map[string]string{
		"services.customer.addr":    cfg.Services.Customer.Addr,
		"services.appointment.addr": cfg.Services.Appointment.Addr,
		"services.technician.addr":  cfg.Services.Technician.Addr,
		"statusboard.addr":          cfg.StatusBoard.Addr,
	} {
		if err := validateAddr(name, addr); err != nil {
			return err
		}
	}

	if key := cfg.Auth.APIKey; key != "" && len(key) < 8 {
		return errors.New("auth.api_key must be at least 8 characters when set")
	}

	if cfg.StatusBoard.Namespace == "" {
		return errors.New("statusboard.namespace must be set")
	}
	if sel := cfg.StatusBoard.LabelSelector; sel == "" || !strings.Contains(sel, "=") {
		return fmt.Errorf("statusboard.label_selector %q must be a key=value selector", sel)
	}

	return nil
}

func validateAddr(name, addr string) error {
	if addr == "" {
		return fmt.Errorf("%s must be set", name)
	}
	if !strings.Contains(addr, ":") {
		return fmt.Errorf("%s %q must be host:port or :port", name, addr)
	}
	return nil
}
