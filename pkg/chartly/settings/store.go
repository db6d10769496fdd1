package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// KeyOnboardingShown records that the onboarding text was displayed.
const KeyOnboardingShown = "onboarding_shown"

// Store persists user preferences in a TOML file.
type Store struct {
	path string
	v    *viper.Viper
}

// OpenStore reads the preferences at path. A missing file yields defaults.
func OpenStore(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetDefault(KeyOnboardingShown, false)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read settings %s: %w", path, err)
		}
	}
	return &Store{path: path, v: v}, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// OnboardingShown reports whether onboarding was completed. Defaults to false.
func (s *Store) OnboardingShown() bool {
	return s.v.GetBool(KeyOnboardingShown)
}

// SetOnboardingShown stores the flag and writes the file.
func (s *Store) SetOnboardingShown(shown bool) error {
	s.v.Set(KeyOnboardingShown, shown)
	return s.save()
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	return nil
}
