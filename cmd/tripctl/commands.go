package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"triptacticx/internal/config"
	"triptacticx/internal/delivery"
	"triptacticx/internal/document"
	"triptacticx/internal/models"
	"triptacticx/internal/planner"
	"triptacticx/internal/service"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var errDeliveryFailed = errors.New("email delivery failed")

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Input  string `short:"i" required:"" type:"existingfile" help:"Plan file with summary and agent_outputs (YAML or JSON)"`
	Output string `short:"o" default:"TripTacticx_TravelPlan.pdf" help:"Where to write the PDF"`
}

func (r *RenderCmd) Run(g *Global) error {
	pdf, err := renderFile(r.Input, g.Logger)
	if err != nil {
		return err
	}
	if err := os.WriteFile(r.Output, pdf, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", r.Output, err)
	}
	g.Logger.Info("PDF сохранен", zap.String("path", r.Output), zap.Int("bytes", len(pdf)))
	return nil
}

// SendCmd implements the 'send' command.
type SendCmd struct {
	Input string `short:"i" required:"" type:"existingfile" help:"Plan file with summary and agent_outputs (YAML or JSON)"`
	Name  string `required:"" help:"Recipient name used in the greeting"`
	Email string `required:"" help:"Recipient email address"`
}

func (s *SendCmd) Run(g *Global) error {
	cfg, err := loadConfig(g.EnvFile)
	if err != nil {
		return err
	}
	smtpCfg := cfg.SMTP()
	if !smtpCfg.HasCredentials() {
		return errors.New("EMAIL_ADDRESS and EMAIL_PASSWORD must be set to send email")
	}

	pdf, err := renderFile(s.Input, g.Logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !delivery.NewEmailDeliverer(smtpCfg, g.Logger).Deliver(ctx, s.Name, s.Email, pdf) {
		return errDeliveryFailed
	}
	fmt.Println(service.MessageEmailSent)
	return nil
}

// PlanCmd implements the 'plan' command.
type PlanCmd struct {
	Destination string `required:"" help:"Trip destination"`
	Source      string `required:"" name:"from" help:"Where the group travels from"`
	Days        int    `required:"" help:"Trip duration in days"`
	GroupSize   int    `name:"group-size" default:"1" help:"Number of travellers"`
	Budget      string `required:"" help:"Total budget, e.g. 'Rs 45,000'"`
	TripType    string `name:"trip-type" default:"leisure" help:"Trip type"`
	Preferences string `help:"Free-form preferences"`
	Output      string `short:"o" help:"Also write the plan PDF to this path"`
}

func (p *PlanCmd) Run(g *Global) error {
	cfg, err := loadConfig(g.EnvFile)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return p.run(ctx, cfg, g.Logger, os.Stdout)
}

func (p *PlanCmd) run(ctx context.Context, cfg *config.Config, log *zap.Logger, out io.Writer) error {
	input, err := service.BuildTripInput(models.TripRequest{
		Name:           "tripctl",
		Email:          "tripctl@localhost",
		Destination:    p.Destination,
		Days:           models.FlexInt(p.Days),
		GroupSize:      models.FlexInt(p.GroupSize),
		Budget:         models.FlexString(p.Budget),
		TripType:       p.TripType,
		SourceLocation: p.Source,
		Preferences:    p.Preferences,
	})
	if err != nil {
		return err
	}

	client, err := planner.NewAIClient(cfg, log)
	if err != nil {
		return err
	}
	prompts, err := planner.NewPromptProvider()
	if err != nil {
		return err
	}

	result, err := planner.NewAgentPlanner(client, prompts, planner.ParamsFromConfig(cfg), log).Plan(ctx, input)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}

	if p.Output == "" {
		return nil
	}
	pdf, err := document.NewComposer(log).Render(result)
	if err != nil {
		return err
	}
	if err := os.WriteFile(p.Output, pdf, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p.Output, err)
	}
	log.Info("PDF сохранен", zap.String("path", p.Output))
	return nil
}

// readPlan читает {summary, agent_outputs}. JSON является подмножеством YAML.
func readPlan(path string) (*models.PlanningResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var result models.PlanningResult
	if err := yaml.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if result.Sections == nil {
		return nil, fmt.Errorf("%s: agent_outputs is required", path)
	}
	return &result, nil
}

func renderFile(path string, log *zap.Logger) ([]byte, error) {
	result, err := readPlan(path)
	if err != nil {
		return nil, err
	}
	return document.NewComposer(log).Render(result)
}

func loadConfig(envFile string) (*config.Config, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
