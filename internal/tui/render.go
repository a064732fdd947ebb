package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/i474232898/weather-now/internal/view"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("160")).
			Padding(0, 1)
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(1, 2)
	metricStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("244")).
			Padding(0, 1).
			Align(lipgloss.Center).
			Width(16)
	tempStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
)

// RenderBody draws the part of the page below the input: welcome, loading,
// error banner or weather card.
func RenderBody(p view.Page) string {
	switch {
	case p.Card != nil:
		return renderCard(*p.Card)
	case p.Error != "":
		return errorStyle.Render(p.Error)
	case p.Loading != "":
		return mutedStyle.Render(p.Loading)
	case p.Welcome != nil:
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render(p.Welcome.Title),
			mutedStyle.Render(p.Welcome.Subtitle),
		))
	}
	return ""
}

func renderCard(c view.Card) string {
	head := []string{
		titleStyle.Render(c.Location),
		tempStyle.Render(c.Temperature + c.UnitLabel),
	}
	if c.Description != "" {
		head = append(head, c.Description)
	}
	head = append(head, mutedStyle.Render("Feels like "+c.FeelsLike+c.UnitLabel))

	metrics := lipgloss.JoinHorizontal(lipgloss.Top,
		metric("Humidity", c.Humidity),
		metric("Wind (m/s)", c.Wind),
		metric("Pressure (hPa)", c.Pressure),
		metric("Visibility (mi)", c.Visibility),
	)
	minmax := lipgloss.JoinHorizontal(lipgloss.Top,
		metric("Min Temp", c.TempMin+c.UnitLabel),
		metric("Max Temp", c.TempMax+c.UnitLabel),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(head, "\n"),
		"",
		metrics,
		minmax,
	))
}

func metric(label, value string) string {
	return metricStyle.Render(titleStyle.Render(value) + "\n" + mutedStyle.Render(label))
}
