package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/restbind/restbind"
	"github.com/restbind/restbind/internal/app"
)

// descriptionLoadedMsg is sent when the api description loaded and bound.
type descriptionLoadedMsg struct {
	location string
	client   *restbind.Client
}

// loadFailedMsg is sent when loading or binding the description failed.
type loadFailedMsg struct {
	location string
	err      error
}

// loadCmd loads the description at location and binds a client over it.
func loadCmd(ctx context.Context, location string) tea.Cmd {
	return func() tea.Msg {
		client, err := app.LoadClient(ctx, location)
		if err != nil {
			return loadFailedMsg{location: location, err: err}
		}
		return descriptionLoadedMsg{location: location, client: client}
	}
}

// buildTree shapes a bound client into the navigation forest: resources at
// the top, operations beneath them, parameter and return rows as leaves.
func buildTree(client *restbind.Client) *TreeState {
	var roots []*TreeNode
	for _, name := range client.Resources() {
		r, err := client.Resource(name)
		if err != nil {
			continue
		}

		rnode := &TreeNode{
			ID:       name,
			Label:    name,
			Detail:   r.Description(),
			Kind:     NodeResource,
			Expanded: true,
		}

		for _, nickname := range r.Operations() {
			op, err := r.Operation(nickname)
			if err != nil {
				continue
			}
			rnode.Children = append(rnode.Children, operationNode(name, op))
		}

		roots = append(roots, rnode)
	}
	return NewTreeState(roots)
}

func operationNode(resource string, op *restbind.Operation) *TreeNode {
	method := op.Method()
	if op.IsWebsocket() {
		method = "WS"
	}

	node := &TreeNode{
		ID:         resource + "." + op.Nickname(),
		Label:      op.Nickname(),
		Detail:     method + " " + op.URI(),
		Kind:       NodeOperation,
		Selectable: true,
	}

	for _, p := range op.Parameters() {
		typ := p.Type
		if p.Ref != "" {
			typ = p.Ref
		} else if p.Format != "" {
			typ = p.Format
		}
		detail := fmt.Sprintf("%s %s", p.ParamType, typ)
		if p.Required {
			detail += " required"
		}
		node.Children = append(node.Children, &TreeNode{
			ID:     node.ID + ".param." + p.Name,
			Label:  p.Name,
			Detail: detail,
			Kind:   NodeParameter,
		})
	}

	if rt := op.ReturnType().String(); rt != "void" {
		node.Children = append(node.Children, &TreeNode{
			ID:     node.ID + ".returns",
			Label:  "returns",
			Detail: rt,
			Kind:   NodeReturn,
		})
	}

	return node
}

// normalizeLocation fills in the scheme shorthand people type into a
// location bar.
func normalizeLocation(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if strings.Contains(s, "://") || strings.HasPrefix(s, "/") || strings.HasPrefix(s, ".") {
		return s
	}
	return "http://" + s
}
