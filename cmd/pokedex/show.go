package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/five82/pokedex/internal/app"
	"github.com/five82/pokedex/internal/catalog"
)

var showCmd = &cobra.Command{
	Use:   "show <number|name>",
	Short: "Reveal one card and print its stats",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("latency") {
		cfg.RevealLatency = 0
	}
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	svc, err := app.NewServices(cfg, stderrLogger())
	if err != nil {
		return err
	}
	if err := app.LoadListing(ctx, svc.Store, svc.Client, svc.LoaderOptions(false)); err != nil {
		return err
	}

	id, err := resolveEntity(svc.Store, args[0])
	if err != nil {
		return err
	}
	if req, ok := svc.Store.ToggleReveal(id); ok {
		svc.Metrics.ObserveReveal()
		if res := svc.Hydrator.HydrateInto(ctx, svc.Store, req); res.Err != nil {
			return res.Err
		}
	}

	e, _ := svc.Store.Entity(id)
	fmt.Fprintln(cmd.OutOrStdout(), renderEntity(e))
	return nil
}

// resolveEntity accepts a number ("25", "#025") or an exact name.
func resolveEntity(store *catalog.Store, arg string) (int, error) {
	arg = strings.TrimSpace(arg)
	if n, err := strconv.Atoi(strings.TrimPrefix(arg, "#")); err == nil {
		if _, ok := store.Entity(n); ok {
			return n, nil
		}
		return 0, fmt.Errorf("no entry #%s", catalog.FormatID(n))
	}
	needle := strings.ToLower(arg)
	for _, e := range store.Snapshot().Entities {
		if e.Name == needle {
			return e.ID, nil
		}
	}
	return 0, fmt.Errorf("no entry named %q", arg)
}

func renderEntity(e catalog.Entity) string {
	label := lipgloss.NewStyle().Width(10).Faint(true)
	title := lipgloss.NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString(title.Render(fmt.Sprintf("#%s %s", e.DisplayID(), e.Name)))
	b.WriteString("\n")
	b.WriteString(label.Render("image") + e.ImageURL + "\n")
	if e.Detail == nil {
		return b.String()
	}
	d := e.Detail
	if len(d.Categories) > 0 {
		b.WriteString(label.Render("types") + strings.Join(d.Categories, ", ") + "\n")
	}
	for _, name := range catalog.StatOrder {
		b.WriteString(label.Render(string(name)) + strconv.Itoa(d.Stats.Get(name)) + "\n")
	}
	b.WriteString(label.Render("height") + fmt.Sprintf("%.1f m", float64(d.Height)/10) + "\n")
	b.WriteString(label.Render("weight") + fmt.Sprintf("%.1f kg", float64(d.Weight)/10) + "\n")
	b.WriteString(label.Render("base exp") + strconv.Itoa(d.BaseExperience) + "\n")
	if len(d.Traits) > 0 {
		b.WriteString(label.Render("abilities") + strings.Join(d.Traits, ", ") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
