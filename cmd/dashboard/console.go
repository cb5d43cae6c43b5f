package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/dashboard"
)

// console renders panel views and notifications to stdout. Loaders run on
// their own goroutines, so all writes go through one mutex.
type console struct {
	mu  sync.Mutex
	out io.Writer
}

func (c *console) Render(view dashboard.PanelView) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.out, "\n== %s ==\n", view.Title)
	for _, stat := range view.Stats {
		fmt.Fprintf(c.out, "%s: %s\n", stat.Label, stat.Value)
	}
	if view.Table != nil {
		c.table(view.Table)
	}
	if len(view.Flow) > 0 {
		c.flow(view.Flow)
	}
	for _, bar := range view.Bars {
		width := int(bar.Percent / 5)
		fmt.Fprintf(c.out, "%-28s %s %.0f%%\n", bar.Label, strings.Repeat("#", width), bar.Percent)
	}
	for _, note := range view.Notes {
		fmt.Fprintln(c.out, note)
	}
}

func (c *console) table(t *dashboard.TableView) {
	w := tabwriter.NewWriter(c.out, 2, 4, 2, ' ', 0)
	header := append([]string{"ID"}, t.Header...)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for i, row := range t.Rows {
		id := ""
		if i < len(t.RowIDs) {
			id = fmt.Sprintf("%d", t.RowIDs[i])
		}
		fmt.Fprintln(w, strings.Join(append([]string{id}, row...), "\t"))
	}
	w.Flush()
}

func (c *console) flow(stages []dashboard.StageView) {
	parts := make([]string, len(stages))
	for i, s := range stages {
		icon := s.Icon
		if icon == "" {
			icon = "•"
		}
		marker := icon
		if s.Current {
			marker = "[" + icon + "]"
		}
		parts[i] = fmt.Sprintf("%s %s (%s)", marker, s.Name, s.Class)
	}
	fmt.Fprintln(c.out, strings.Join(parts, " -> "))
}

func (c *console) Success(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, "OK:", msg)
}

func (c *console) Error(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, "ERROR:", msg)
}

func (c *console) confirm(prompt string) bool {
	c.mu.Lock()
	fmt.Fprintf(c.out, "%s [y/N] ", prompt)
	c.mu.Unlock()

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
