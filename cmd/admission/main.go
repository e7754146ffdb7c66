/*
main.go - Command-line admission calculator

PURPOSE:
  Runs the same calculation as POST /api/calculations without a server.
  Prints the result as JSON, or writes the document bundle zip with -out.

COMMAND-LINE FLAGS:
  -hire      Hire date, YYYY-MM-DD (required)
  -rotation  Rotation identifier, e.g. 5x2, 6x1, 12x36 (required)
  -rate      Supplied daily rate as kind=value, repeatable (e.g. -rate vt=12,50)
  -plan      Benefit plan file (default: $PLAN_FILE or built-in plan)
  -out       Write the zip bundle to this path instead of printing JSON
  -name, -company, -client, -role, -shift, -bank, -pix-type, -pix-key
             Collaborator fields printed in the documents

EXAMPLES:
  ./admission -hire=2024-01-10 -rotation=5x2 -rate vt=10
  ./admission -hire=2024-01-20 -rotation=6x1 -rate vt=8.40 -name="Ana Souza" -out=ana.zip
*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/warp/admission-benefits/api"
	"github.com/warp/admission-benefits/benefit"
	"github.com/warp/admission-benefits/config"
	"github.com/warp/admission-benefits/factory"
	"github.com/warp/admission-benefits/generic"
	"github.com/warp/admission-benefits/logging"
	"github.com/warp/admission-benefits/report"
	"github.com/warp/admission-benefits/schedule"
	"go.uber.org/zap"
)

// rateFlags collects repeated -rate kind=value flags.
type rateFlags map[benefit.Kind]float64

func (r rateFlags) String() string {
	parts := make([]string, 0, len(r))
	for k, v := range r {
		parts = append(parts, fmt.Sprintf("%s=%g", k, v))
	}
	return strings.Join(parts, ",")
}

func (r rateFlags) Set(s string) error {
	kind, raw, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("expected kind=value, got %q", s)
	}
	v, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(raw), ",", ".", 1), 64)
	if err != nil {
		return fmt.Errorf("rate for %s: %w", kind, err)
	}
	r[benefit.Kind(strings.ToLower(strings.TrimSpace(kind)))] = v
	return nil
}

func main() {
	cfg, _ := config.Load()

	rates := rateFlags{}
	hire := flag.String("hire", "", "Hire date (YYYY-MM-DD)")
	rotation := flag.String("rotation", "", "Rotation identifier (5x2, 6x1, 5x1, 4x2, 12x36)")
	planFile := flag.String("plan", cfg.PlanFile, "Benefit plan file (YAML or JSON)")
	out := flag.String("out", "", "Write the document bundle zip to this path")
	flag.Var(rates, "rate", "Supplied daily rate as kind=value (repeatable)")

	var adm report.Admission
	flag.StringVar(&adm.Name, "name", "", "Collaborator name")
	flag.StringVar(&adm.Company, "company", "", "Company")
	flag.StringVar(&adm.Client, "client", "", "Client")
	flag.StringVar(&adm.Role, "role", "", "Role")
	flag.StringVar(&adm.Shift, "shift", "", "Shift")
	flag.StringVar(&adm.Bank, "bank", "", "Bank")
	flag.StringVar(&adm.PixKeyType, "pix-type", "", "PIX key type")
	flag.StringVar(&adm.PixKey, "pix-key", "", "PIX key")
	flag.Parse()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}

	if err := run(logger, *hire, *rotation, *planFile, *out, rates, adm); err != nil {
		logger.Error("admission calculation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(logger *zap.Logger, hire, rotation, planFile, out string, rates rateFlags, adm report.Admission) error {
	hireDate, err := generic.ParseDate(strings.TrimSpace(hire))
	if err != nil {
		return fmt.Errorf("invalid hire date %q (use YYYY-MM-DD): %w", hire, err)
	}
	rot, err := schedule.ParseRotation(rotation)
	if err != nil {
		return err
	}

	plan := factory.DefaultPlan()
	if planFile != "" {
		if plan, err = factory.NewPlanFactory().LoadPlan(planFile); err != nil {
			return err
		}
	}
	logger.Debug("benefit plan loaded", zap.String("plan_file", planFile), zap.Int("benefits", len(plan.Benefits)))

	result, err := benefit.Calculate(plan, benefit.Request{
		HireDate:      hireDate,
		Rotation:      rot,
		SuppliedRates: rates,
	})
	if err != nil {
		return err
	}

	if out == "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(api.ToCalculationDTO(uuid.NewString(), result))
	}

	adm.HireDate = result.HireDate
	adm.Rotation = result.Rotation.String()
	bundle, err := report.Build(adm, result)
	if err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := bundle.WriteZip(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("admission bundle written",
		zap.String("path", out),
		zap.String("document_id", bundle.ID.String()),
		zap.Int("documents", len(bundle.Documents)),
		zap.Int("day_count", result.DayCount()),
	)
	return nil
}
