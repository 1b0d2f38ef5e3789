package xaml

import (
	"gopkg.in/yaml.v3"
)

// MarshalYAML exports the graph keeping member order. Markup extensions are
// folded into their attribute syntax so style references stay readable.
func (n *Node) MarshalYAML() (interface{}, error) {
	if n.Type == nil {
		return n.Text, nil
	}

	out := &yaml.Node{Kind: yaml.MappingNode}
	addScalar(out, "type", n.Type.QualifiedName())

	if len(n.Namespaces) > 0 {
		nss := &yaml.Node{Kind: yaml.MappingNode}
		for _, ns := range n.Namespaces {
			prefix := ns.Prefix
			if prefix == "" {
				prefix = "default"
			}
			addScalar(nss, prefix, ns.URI)
		}
		addNode(out, "namespaces", nss)
	}

	for _, p := range n.Members {
		switch {
		case p.HasValue && !p.Collection:
			addScalar(out, p.Member.Name, p.Value)
		case len(p.Items) == 1 && p.Items[0].Type != nil && p.Items[0].Type.MarkupExtension:
			ext, err := extension(p.Items[0])
			if err != nil {
				return nil, err
			}
			addScalar(out, p.Member.Name, ext)
		default:
			seq := &yaml.Node{Kind: yaml.SequenceNode}
			for _, item := range p.Items {
				v := &yaml.Node{}
				if err := v.Encode(item); err != nil {
					return nil, err
				}
				seq.Content = append(seq.Content, v)
			}
			addNode(out, p.Member.Name, seq)
		}
	}
	return out, nil
}

func addScalar(m *yaml.Node, key, value string) {
	addNode(m, key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
}

func addNode(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
}

// MarshalGraphYAML encodes top-level objects as a YAML document. A single
// root is written as a mapping, several as a sequence.
func MarshalGraphYAML(roots ...*Node) ([]byte, error) {
	if len(roots) == 1 {
		return yaml.Marshal(roots[0])
	}
	return yaml.Marshal(roots)
}
