package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/dnanderson/TripLiteHID/internal/hid"
	"github.com/dnanderson/TripLiteHID/internal/report"
	"github.com/dnanderson/TripLiteHID/pkg/tripplite"
)

type cli struct {
	ID       string `help:"Device identifier as hex vendorId:productId." default:"09ae:2012" env:"UPSLITE_ID"`
	LogLevel string `help:"Log level (debug, info, warn, error)." default:"warn" env:"UPSLITE_LOG_LEVEL"`

	List   listCmd   `cmd:"" help:"List matching HID devices."`
	Status statusCmd `cmd:"" help:"Print one snapshot of the UPS state."`
	Watch  watchCmd  `cmd:"" help:"Poll the UPS state until interrupted."`
}

type listCmd struct{}

func (l *listCmd) Run(c *cli) error {
	vid, pid, err := tripplite.ParseID(c.ID)
	if err != nil {
		return err
	}
	mgr, err := hid.NewManager()
	if err != nil {
		return err
	}
	infos, err := mgr.List(vid, pid)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		return fmt.Errorf("no devices matching %s", c.ID)
	}
	for _, info := range infos {
		fmt.Printf("%04x:%04x  %-24s %-24s %s\n",
			info.VendorID, info.ProductID, info.Manufacturer, info.Product, info.Path)
	}
	return nil
}

type statusCmd struct{}

func (s *statusCmd) Run(c *cli) error {
	u, err := openUPS(c)
	if err != nil {
		return err
	}
	defer u.Close()

	snap, err := u.Snapshot()
	if err != nil {
		return err
	}
	printSnapshot(snap)
	return nil
}

type watchCmd struct {
	Interval time.Duration `help:"Polling interval." default:"5s"`
}

func (w *watchCmd) Run(c *cli) error {
	u, err := openUPS(c)
	if err != nil {
		return err
	}
	defer u.Close()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		snap, err := u.Snapshot()
		if err != nil {
			slog.Error("snapshot failed", slog.Any("error", err))
		} else {
			printSnapshot(snap)
			fmt.Println("-----")
		}

		select {
		case <-stop:
			return nil
		case <-ticker.C:
		}
	}
}

func openUPS(c *cli) (*tripplite.UPS, error) {
	mgr, err := hid.NewManager()
	if err != nil {
		return nil, err
	}
	return tripplite.OpenID(mgr, c.ID, report.Config{})
}

func printSnapshot(s tripplite.Snapshot) {
	fmt.Printf("status:            %s\n", s.Status)
	fmt.Printf("input:             %.1f V, %.1f Hz\n", s.InputVoltage, s.InputFrequency)
	fmt.Printf("output:            %.1f V, %d W\n", s.OutputVoltage, s.OutputPower)
	fmt.Printf("nominal:           %d V, %d Hz, %d W\n", s.NominalVoltage, s.NominalFrequency, s.PowerRating)
	fmt.Printf("battery health:    %d%%\n", s.BatteryHealth)
	fmt.Printf("time to empty:     %d min\n", s.TimeToEmpty)
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("upslite"),
		kong.Description("Query Tripp Lite UPS state over USB HID."),
		kong.UsageOnError(),
	)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(c.LogLevel),
	})))

	ctx.FatalIfErrorf(ctx.Run(&c))
}
