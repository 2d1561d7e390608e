package taxonomy

import (
	"fmt"

	"gopkg.in/yaml.v3"

	derrors "github.com/ripixel/fitglue-diary/pkg/errors"
)

// ParseYAML reads a nested taxonomy document:
//
//	胸部:
//	  哑铃:
//	    双边: [哑铃平板卧推, 哑铃飞鸟]
//
// Groups come back in document order so Build's last-write-wins policy
// follows the file.
func ParseYAML(data []byte) ([]Group, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, derrors.ErrTaxonomyInvalid.WithCause(err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nodeError(root, "top level must map muscles to equipment")
	}

	var groups []Group
	err := eachPair(root, func(muscle string, equipNode *yaml.Node) error {
		if equipNode.Kind != yaml.MappingNode {
			return nodeError(equipNode, fmt.Sprintf("%s must map equipment to laterality", muscle))
		}
		return eachPair(equipNode, func(equipment string, sideNode *yaml.Node) error {
			if sideNode.Kind != yaml.MappingNode {
				return nodeError(sideNode, fmt.Sprintf("%s/%s must map laterality to names", muscle, equipment))
			}
			return eachPair(sideNode, func(side string, namesNode *yaml.Node) error {
				var names []string
				if err := namesNode.Decode(&names); err != nil {
					return nodeError(namesNode, fmt.Sprintf("%s/%s/%s must be a list of names", muscle, equipment, side))
				}
				g := Group{
					Muscle:     Muscle(muscle),
					Equipment:  Equipment(equipment),
					Laterality: Laterality(side),
					Names:      names,
				}
				if err := g.validate(); err != nil {
					return err
				}
				groups = append(groups, g)
				return nil
			})
		})
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func eachPair(m *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if err := fn(m.Content[i].Value, m.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func nodeError(n *yaml.Node, msg string) error {
	return derrors.ErrTaxonomyInvalid.
		WithMessage(fmt.Sprintf("line %d: %s", n.Line, msg)).
		WithMetadata("line", fmt.Sprint(n.Line))
}

// Load builds an index from the default table followed by the groups in an
// override document, so override entries win on conflict.
func Load(data []byte, opts ...Option) (*Index, error) {
	extra, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}
	groups := make([]Group, 0, len(DefaultGroups)+len(extra))
	groups = append(groups, DefaultGroups...)
	groups = append(groups, extra...)
	return Build(groups, opts...)
}
