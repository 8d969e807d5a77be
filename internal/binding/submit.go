// Package binding applies a decoded submission to a form tree: it stores raw
// input, runs transformers, marks nodes whose input could not be converted,
// records unknown keys as extra fields and detects the clicked button.
package binding

import (
	"fmt"

	"github.com/goliatone/go-formvalidator/pkg/form"
)

// Submit binds raw to node and its descendants. Conversion problems are
// recorded on the nodes; the returned error only reports broken trees.
func Submit(node *form.Node, raw any) error {
	if node == nil {
		return fmt.Errorf("binding: node is nil")
	}
	node.SetRawInput(raw)
	if node.Compound() {
		return submitCompound(node, raw)
	}
	submitLeaf(node, raw)
	return nil
}

func submitLeaf(node *form.Node, raw any) {
	transformer := node.Transformer()
	if transformer == nil {
		node.SetData(raw)
		return
	}
	value, err := transformer(raw)
	if err != nil {
		node.MarkNotSynchronized(&form.TransformationError{
			Message: fmt.Sprintf("unable to transform value for %q", node.Name()),
			Err:     err,
		})
		return
	}
	node.SetData(value)
}

func submitCompound(node *form.Node, raw any) error {
	var entries *Map
	switch v := raw.(type) {
	case nil:
		entries = NewMap()
	case *Map:
		entries = v
	case map[string]any:
		entries = FromMap(v)
	default:
		node.MarkNotSynchronized(&form.TransformationError{
			Message: fmt.Sprintf("unable to transform value for %q", node.Name()),
			Err:     fmt.Errorf("expected a mapping, got %T", raw),
		})
		return nil
	}

	children := node.Children()
	data := make(map[string]any, len(children))
	for _, child := range children {
		value, _ := entries.Get(child.Name())
		if err := Submit(child, value); err != nil {
			return err
		}
		data[child.Name()] = child.Data()
	}

	for _, key := range entries.Keys() {
		if node.Child(key) != nil {
			continue
		}
		if button := node.Button(key); button != nil {
			if err := node.Root().Click(button); err != nil {
				return fmt.Errorf("binding: %w", err)
			}
			continue
		}
		value, _ := entries.Get(key)
		if err := node.AddExtraField(key, value); err != nil {
			return fmt.Errorf("binding: %w", err)
		}
	}

	if transformer := node.Transformer(); transformer != nil {
		value, err := transformer(data)
		if err != nil {
			node.MarkNotSynchronized(&form.TransformationError{
				Message: fmt.Sprintf("unable to transform value for %q", node.Name()),
				Err:     err,
			})
			return nil
		}
		node.SetData(value)
		return nil
	}
	node.SetData(data)
	return nil
}
