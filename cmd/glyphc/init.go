package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/glyphc/internal/domain/services"
	"github.com/reglet-dev/glyphc/internal/domain/values"
	"github.com/reglet-dev/glyphc/internal/infrastructure/config"
)

// InitOptions drive the starter configuration generator.
type InitOptions struct {
	ControllerID  string
	TimeID        string
	Sensors       []string
	BinarySensors []string
	OutputPath    string
	Force         bool
	NoInteractive bool
}

var initOpts InitOptions

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter clock face configuration",
	Long: `Generate a starter configuration with one visible group that shows the
time plus one widget per selected sensor. Glyphs implied by each sensor's
device class are picked up by the group's "*" wildcard.`,
	Example: `  glyphc init
  glyphc init --no-interactive --binary-sensors door,motion -o clock.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInit(cmd.OutOrStdout(), &initOpts)
	},
}

var (
	sensorClasses       = []string{"temperature", "humidity", "battery", "illuminance", "power"}
	binarySensorClasses = []string{"door", "window", "motion", "occupancy", "moisture", "smoke"}
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initOpts.ControllerID, "controller-id", "oclock", "Controller identifier")
	initCmd.Flags().StringVar(&initOpts.TimeID, "time-id", "sntp_time", "Time source identifier")
	initCmd.Flags().StringSliceVar(&initOpts.Sensors, "sensors", nil, fmt.Sprintf("Sensor device classes %v", sensorClasses))
	initCmd.Flags().StringSliceVar(&initOpts.BinarySensors, "binary-sensors", nil, fmt.Sprintf("Binary sensor device classes %v", binarySensorClasses))
	initCmd.Flags().StringVarP(&initOpts.OutputPath, "output", "o", "glyphc.yaml", "Where to write the configuration")
	initCmd.Flags().BoolVar(&initOpts.Force, "force", false, "Overwrite an existing file")
	initCmd.Flags().BoolVar(&initOpts.NoInteractive, "no-interactive", false, "Use flags only, never prompt")
}

func runInit(w io.Writer, opts *InitOptions) error {
	if !opts.Force {
		if _, err := os.Stat(opts.OutputPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", opts.OutputPath)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	if !opts.NoInteractive {
		if err := promptInit(opts); err != nil {
			return err
		}
	}

	data, err := renderStarter(opts)
	if err != nil {
		return err
	}

	// The starter must compile as written
	loader, err := config.NewConfigurationLoader()
	if err != nil {
		return err
	}
	if _, err := loader.LoadConfigurationFromBytes(data); err != nil {
		return fmt.Errorf("generated configuration is invalid: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(opts.OutputPath), data, 0o600); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	fmt.Fprintf(w, "✓ Configuration saved to %s\n", opts.OutputPath)
	fmt.Fprintf(w, "Run 'glyphc compile %s' to build the instruction stream.\n", opts.OutputPath)
	return nil
}

func promptInit(opts *InitOptions) error {
	err := huh.NewInput().
		Title("Controller ID").
		Value(&opts.ControllerID).
		Run()
	if err != nil {
		return err
	}

	err = huh.NewInput().
		Title("Time source ID").
		Value(&opts.TimeID).
		Run()
	if err != nil {
		return err
	}

	if len(opts.Sensors) == 0 {
		err = huh.NewMultiSelect[string]().
			Title("Sensors to show").
			Options(huh.NewOptions(sensorClasses...)...).
			Value(&opts.Sensors).
			Run()
		if err != nil {
			return err
		}
	}

	if len(opts.BinarySensors) == 0 {
		err = huh.NewMultiSelect[string]().
			Title("Binary sensors to show").
			Options(huh.NewOptions(binarySensorClasses...)...).
			Value(&opts.BinarySensors).
			Run()
		if err != nil {
			return err
		}
	}
	return nil
}

type starterDoc struct {
	Version       int               `yaml:"version"`
	Controller    starterController `yaml:"controller"`
	Logger        starterLogger     `yaml:"logger"`
	Sensors       []starterSensor   `yaml:"sensors,omitempty"`
	BinarySensors []starterSensor   `yaml:"binary_sensors,omitempty"`
	Times         []starterHandle   `yaml:"times"`
	Groups        []starterGroup    `yaml:"groups"`
}

type starterController struct {
	ID     string `yaml:"id"`
	TimeID string `yaml:"time_id"`
}

type starterLogger struct {
	BaudRate int `yaml:"baud_rate"`
}

type starterSensor struct {
	ID          string `yaml:"id"`
	DeviceClass string `yaml:"device_class"`
}

type starterHandle struct {
	ID string `yaml:"id"`
}

type starterGroup struct {
	ID      string          `yaml:"id"`
	Glyph   string          `yaml:"glyph"`
	Widgets []starterWidget `yaml:"widgets"`
}

type starterWidget struct {
	Type           string `yaml:"type"`
	SensorID       string `yaml:"sensor_id,omitempty"`
	BinarySensorID string `yaml:"binary_sensor_id,omitempty"`
	TimeID         string `yaml:"time_id,omitempty"`
	OnGlyph        string `yaml:"on_glyph,omitempty"`
	OffGlyph       string `yaml:"off_glyph,omitempty"`
	Sticky         bool   `yaml:"sticky,omitempty"`
}

// renderStarter builds the starter YAML for opts.
func renderStarter(opts *InitOptions) ([]byte, error) {
	doc := starterDoc{
		Version:    1,
		Controller: starterController{ID: opts.ControllerID, TimeID: opts.TimeID},
		Times:      []starterHandle{{ID: opts.TimeID}},
	}
	group := starterGroup{ID: "main", Glyph: "*"}

	for _, dc := range opts.Sensors {
		id := dc + "_sensor"
		doc.Sensors = append(doc.Sensors, starterSensor{ID: id, DeviceClass: dc})
		group.Widgets = append(group.Widgets, starterWidget{Type: "sensor", SensorID: id})
	}

	for _, dc := range opts.BinarySensors {
		id := dc + "_sensor"
		doc.BinarySensors = append(doc.BinarySensors, starterSensor{ID: id, DeviceClass: dc})

		widget := starterWidget{Type: "binary_sensor", BinarySensorID: id, Sticky: true}
		if icons := services.IconsForDeviceClass(values.NewDeviceClass(dc)); len(icons) > 0 {
			widget.OnGlyph = icons[0]
			widget.OffGlyph = icons[len(icons)-1]
		}
		group.Widgets = append(group.Widgets, widget)
	}

	group.Widgets = append(group.Widgets, starterWidget{Type: "digital-time", TimeID: opts.TimeID})
	doc.Groups = []starterGroup{group}

	data, err := yaml.MarshalWithOptions(doc, yaml.Indent(2))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return data, nil
}
