package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/postoffice/internal/tui/styles"
	"github.com/Iron-Ham/postoffice/internal/util"
)

const (
	maxWorkerRows = 12
	maxBarWidth   = 40
	// indent plus box border and padding around a journal line
	recentIndent = 6
)

// View renders the dashboard
func (m Model) View() string {
	if m.quitting && !m.done {
		return styles.Muted.Render("dashboard closed, waiting for the office to finish...") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderQueues())
	b.WriteString("\n")
	b.WriteString(m.renderWorkers())
	b.WriteString("\n")
	b.WriteString(m.renderClients())
	b.WriteString("\n")
	b.WriteString(m.renderRecent())

	if m.err != nil {
		b.WriteString("\n" + styles.ErrorMsg.Render("error: "+m.err.Error()))
	}
	b.WriteString(styles.HelpBar.Render("q quit"))

	return styles.ContentBox.Render(b.String()) + "\n"
}

func (m Model) renderHeader() string {
	icon := m.spinner.View()
	if m.done {
		icon = styles.Secondary.Render("✓")
	}

	badge := styles.OpenBadge.Render("OPEN")
	if !m.open {
		badge = styles.ClosedBadge.Render("CLOSED")
	}

	info := fmt.Sprintf("%d lines  %s", m.lines, m.elapsed.Round(time.Millisecond))
	if m.closedAfter > 0 {
		info += fmt.Sprintf("  closed after %s", m.closedAfter)
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		icon+" ",
		styles.Primary.Bold(true).Render("post office")+" ",
		badge+" ",
		styles.Muted.Render(info),
	)
}

func (m Model) renderQueues() string {
	var b strings.Builder
	b.WriteString(styles.SectionTitle.Render("Queues") + "\n")
	for i, n := range m.queues {
		bar := strings.Repeat("█", min(n, maxBarWidth))
		if n > maxBarWidth {
			bar += "+"
		}
		fmt.Fprintf(&b, "  service %d %3d %s\n", i+1, n, styles.QueueBar.Render(bar))
	}
	return b.String()
}

func (m Model) renderWorkers() string {
	var b strings.Builder
	b.WriteString(styles.SectionTitle.Render("Workers") + "\n")
	for i, s := range m.workers {
		if i == maxWorkerRows {
			fmt.Fprintf(&b, "  %s\n", styles.Muted.Render(fmt.Sprintf("+%d more", len(m.workers)-maxWorkerRows)))
			break
		}
		label := s
		if s == statusServing && m.serving[i] > 0 {
			label = fmt.Sprintf("serving %d", m.serving[i])
		}
		style := lipgloss.NewStyle().Foreground(styles.StatusColor(s))
		fmt.Fprintf(&b, "  %s U %-3d %s\n", style.Render(styles.StatusIcon(s)), i+1, label)
	}
	return b.String()
}

func (m Model) renderClients() string {
	counts := m.clientCounts()
	order := []string{statusWalking, statusWaiting, statusCalled, statusHome, statusRejected}

	parts := make([]string, 0, len(order))
	for _, s := range order {
		style := lipgloss.NewStyle().Foreground(styles.StatusColor(s))
		parts = append(parts, style.Render(fmt.Sprintf("%s %d", s, counts[s])))
	}
	return styles.SectionTitle.Render(fmt.Sprintf("Clients (%d)", len(m.clients))) + "\n  " +
		strings.Join(parts, "  ") + "\n"
}

func (m Model) renderRecent() string {
	var b strings.Builder
	b.WriteString(styles.SectionTitle.Render("Journal") + "\n")
	if len(m.recent) == 0 {
		b.WriteString("  " + styles.Muted.Render("(empty)") + "\n")
	}
	for _, line := range m.recent {
		if m.width > recentIndent {
			line = util.TruncateANSI(line, m.width-recentIndent)
		}
		b.WriteString("  " + styles.Text.Render(line) + "\n")
	}
	return b.String()
}
