package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8"))

	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

func clampMin(n, min int) int {
	if n < min {
		return min
	}
	return n
}

func (m *model) View() string {
	// Wait until we get an initial window size.
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}

	contentW := clampMin(m.width-2-4, 0) // border + padding(1,2)
	header := lipgloss.NewStyle().Width(contentW).Render(m.viewLocationBar())
	footer := lipgloss.NewStyle().Width(contentW).Render(m.viewFooter(contentW))
	content := fmt.Sprintf("%s\n\n%s\n\n%s", header, m.viewport.View(), footer)

	innerW := clampMin(m.width-2, 0)
	innerH := clampMin(m.height-2, 0)

	padded := lipgloss.NewStyle().Padding(1, 2).Render(content)
	inner := lipgloss.Place(innerW, innerH, lipgloss.Left, lipgloss.Top, padded)

	return frameStyle.Width(innerW).Height(innerH).Render(inner)
}

func (m *model) viewLocationBar() string {
	if m.focusLoc {
		return dimStyle.Render("location: ") + m.locInput.View()
	}

	title := m.location
	if m.client != nil {
		if listing := m.client.Listing(); listing.Info != nil && listing.Info.Title != "" {
			title = listing.Info.Title + "  " + dimStyle.Render(m.location)
		}
	}
	bar := headerStyle.Render(title)
	if m.loading {
		bar += "  " + dimStyle.Render(spinnerFrames[m.spinnerFrame]+" loading")
	}
	return bar
}

func (m *model) viewFooter(width int) string {
	divider := dimStyle.Render(strings.Repeat("─", clampMin(width, 0)))

	if m.focusArgs {
		line := dimStyle.Render("args: ") + m.argsInput.View()
		hint := dimStyle.Render("name=value pairs   enter: run   esc: cancel")
		return divider + "\n" + line + "\n" + hint
	}

	if m.helpShown {
		return divider + "\n" + dimStyle.Render("any key: close help")
	}

	entries := []string{"j/k: navigate", "h/l: collapse/expand"}

	if node := m.selectedNode(); node != nil {
		switch node.Kind {
		case NodeResource:
			entries = append(entries, "enter: toggle")
		default:
			entries = append(entries, "enter: run", "a: args", "d: describe")
			if opID := m.selectedOperationID(); opID != "" {
				if run, ok := m.runs[opID]; ok {
					if run.active() {
						entries = append(entries, "c: cancel")
					}
					if run.output != "" {
						entries = append(entries, "o: copy output")
					}
				}
			}
		}
	}
	entries = append(entries, "?: help", "q: quit")

	footer := divider + "\n" + dimStyle.Render(strings.Join(entries, "   "))
	if m.statusMsg != "" {
		footer += "   " + statusStyle.Render(m.statusMsg)
	}
	return footer
}

func (m *model) selectedNode() *TreeNode {
	if m.tree == nil {
		return nil
	}
	return m.tree.Selected()
}

// renderBody renders the tree with run output blocks and reports which line
// the selected node landed on, for viewport scrolling.
func (m *model) renderBody() (string, int) {
	if m.helpShown {
		return m.renderHelp(), 0
	}
	if m.loadErr != "" {
		return errStyle.Render("✗ ") + m.loadErr + "\n\n" +
			dimStyle.Render("ctrl+r: retry   u: edit location"), 0
	}
	if m.location == "" && !m.loading {
		return dimStyle.Render("Enter a description location to browse"), 0
	}
	if m.loading || m.tree == nil {
		return dimStyle.Render("Loading " + m.location + "..."), 0
	}

	visible := m.tree.Visible()
	if len(visible) == 0 {
		return dimStyle.Render("No resources published"), 0
	}

	selected := m.tree.Selected()
	selLine := 0
	var sb strings.Builder
	line := 0

	for i, node := range visible {
		if i > 0 {
			sb.WriteString("\n")
			line++
		}
		if node == selected {
			selLine = line
		}
		sb.WriteString(m.renderTreeNode(node, node == selected))

		// An operation's output block renders under it: directly when the
		// node is collapsed, after the last detail row when expanded.
		var blockOp *TreeNode
		if node.Kind == NodeOperation && (!node.Expanded || node.IsLeaf()) {
			blockOp = node
		} else if op := m.enclosingExpandedOp(visible, i); op != nil {
			blockOp = op
		}
		if blockOp != nil {
			indent := strings.Repeat(" ", (blockOp.Depth+1)*2)
			if text, ok := m.describes[blockOp.ID]; ok && text != "" {
				block := indentBlock(indent, outputBoxStyle.Render(dimStyle.Render(text)))
				sb.WriteString("\n")
				sb.WriteString(block)
				line += strings.Count(block, "\n") + 1
			}
			if run, ok := m.runs[blockOp.ID]; ok {
				block := m.renderRunState(indent, run)
				if block != "" {
					sb.WriteString("\n")
					sb.WriteString(block)
					line += strings.Count(block, "\n") + 1
				}
			}
		}
	}

	return sb.String(), selLine
}

// renderHelp lists every key binding, shown in place of the tree.
func (m *model) renderHelp() string {
	rows := [][2]string{
		{"j/k, up/down", "move selection"},
		{"g/G", "first/last row"},
		{"h/l, left/right", "collapse/expand node"},
		{"shift+left/right", "collapse/expand all"},
		{"enter, space, r", "run operation (resource: toggle)"},
		{"a", "edit argument line and run"},
		{"d", "show/hide operation description"},
		{"c", "cancel run in flight"},
		{"o", "copy output to clipboard"},
		{"u, ctrl+l", "edit location"},
		{"ctrl+r", "reload description"},
		{"?", "this help"},
		{"q, esc, ctrl+c", "quit"},
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Keys"))
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("\n  %-18s %s", row[0], dimStyle.Render(row[1])))
	}
	return sb.String()
}

// enclosingExpandedOp returns the expanded operation whose subtree ends at
// index i of the visible rows, if any.
func (m *model) enclosingExpandedOp(visible []*TreeNode, i int) *TreeNode {
	node := visible[i]
	if node.Kind != NodeParameter && node.Kind != NodeReturn {
		return nil
	}
	// The block belongs after the operation's last visible child.
	if i+1 < len(visible) && visible[i+1].Depth >= node.Depth {
		return nil
	}
	parent := m.tree.parentOf(node)
	if parent != nil && parent.Kind == NodeOperation && parent.Expanded {
		return parent
	}
	return nil
}

func (m *model) renderTreeNode(node *TreeNode, selected bool) string {
	indent := strings.Repeat(" ", node.Depth*2)

	indicator := " "
	if !node.IsLeaf() {
		if node.Expanded {
			indicator = "▾"
		} else {
			indicator = "▸"
		}
	}

	label := node.Label
	style := lipgloss.NewStyle()
	switch {
	case selected:
		style = selectedStyle
	case node.Kind == NodeResource:
		style = headerStyle
	case node.Kind == NodeParameter, node.Kind == NodeReturn:
		style = dimStyle
	}

	parts := []string{indent, style.Render(indicator), " ", style.Render(label)}

	if node.Detail != "" {
		parts = append(parts, " ", dimStyle.Render(node.Detail))
	}

	if node.Kind == NodeOperation {
		if run, ok := m.runs[node.ID]; ok {
			parts = append(parts, " ", m.renderRunBadge(run))
		}
	}

	return strings.Join(parts, "")
}

func (m *model) renderRunBadge(run *opRun) string {
	switch run.status {
	case runRunning:
		return dimStyle.Render(spinnerFrames[m.spinnerFrame] + " running")
	case runStreaming:
		return okStyle.Render(fmt.Sprintf("%s streaming (%d events)", spinnerFrames[m.spinnerFrame], run.eventCount))
	case runSuccess:
		return okStyle.Render(fmt.Sprintf("✓ %dms", run.durationMs))
	case runError:
		return errStyle.Render("✗")
	}
	return ""
}

// renderRunState renders the output block for a finished or streaming run.
func (m *model) renderRunState(indent string, run *opRun) string {
	var body string
	switch {
	case run.status == runError && run.errMsg != "":
		body = errStyle.Render(run.errMsg)
		if run.output != "" {
			body += "\n" + highlightOutput(run.output)
		}
	case run.output != "":
		body = highlightOutput(run.output)
	default:
		return ""
	}

	return indentBlock(indent, outputBoxStyle.Render(body))
}

// indentBlock prefixes every line of a rendered block.
func indentBlock(indent, block string) string {
	lines := strings.Split(block, "\n")
	for i := range lines {
		lines[i] = indent + lines[i]
	}
	return strings.Join(lines, "\n")
}

// syncViewport updates the viewport dimensions and content.
func (m *model) syncViewport() {
	innerW := clampMin(m.width-2, 0)
	innerH := clampMin(m.height-2, 0)
	contentW := clampMin(innerW-4, 0) // padding left+right (2 each)
	contentH := clampMin(innerH-2, 0) // padding top+bottom (1 each)

	header := m.viewLocationBar()
	footer := m.viewFooter(contentW)
	headerLines := countLines(header)
	footerLines := countLines(footer)

	// Blank lines between header/body and body/footer.
	availH := clampMin(contentH-headerLines-footerLines-2, 1)

	m.viewport.Width = contentW
	m.viewport.Height = availH

	body, _ := m.renderBody()
	m.viewport.SetContent(body)
}

// ensureSelectionVisible scrolls the viewport so the selected row shows.
func (m *model) ensureSelectionVisible() {
	m.syncViewport()
	_, line := m.renderBody()
	if line < 0 || m.viewport.Height <= 0 {
		return
	}
	top := m.viewport.YOffset
	bottom := top + m.viewport.Height - 1
	if line < top {
		m.viewport.YOffset = line
	} else if line > bottom {
		m.viewport.YOffset = line - m.viewport.Height + 1
	}
}

func countLines(s string) int {
	if s == "" {
		return 1
	}
	return strings.Count(s, "\n") + 1
}
