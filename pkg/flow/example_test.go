package flow_test

import (
	"fmt"

	"github.com/promptdeck/flownote/pkg/flow"
)

func ExampleMarshalData() {
	// A minimal two-step flow
	d := flow.Data{
		Nodes: []flow.Node{
			{ID: "node-1", Type: flow.NodeStart, Label: "Inicio"},
			{ID: "node-2", Type: flow.NodeEnd, Label: "Fin", Position: flow.Position{Y: 150}},
		},
		Edges: []flow.Edge{
			{ID: "edge-1", Source: "node-1", Target: "node-2"},
		},
	}

	b, err := flow.MarshalData(d)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Print(string(b))
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "node-1",
	//       "type": "start",
	//       "label": "Inicio",
	//       "position": {
	//         "x": 0,
	//         "y": 0
	//       }
	//     },
	//     {
	//       "id": "node-2",
	//       "type": "end",
	//       "label": "Fin",
	//       "position": {
	//         "x": 0,
	//         "y": 150
	//       }
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "id": "edge-1",
	//       "source": "node-1",
	//       "target": "node-2"
	//     }
	//   ]
	// }
}

func ExampleValidate() {
	// An edge pointing at a node that does not exist
	d := flow.Data{
		Nodes: []flow.Node{
			{ID: "node-1", Type: flow.NodeStart, Label: "Inicio"},
		},
		Edges: []flow.Edge{
			{ID: "edge-1", Source: "node-1", Target: "node-9"},
		},
	}

	fmt.Println(flow.Validate(d))
	// Output:
	// edge references unknown node: target node-9
}

func ExampleClassifyBranch() {
	fmt.Println(flow.ClassifyBranch(flow.Edge{SourceHandle: flow.HandleYes}))
	fmt.Println(flow.ClassifyBranch(flow.Edge{Label: "Sí"}))
	fmt.Println(flow.ClassifyBranch(flow.Edge{Label: "No"}))
	fmt.Println(flow.ClassifyBranch(flow.Edge{Label: "tal vez"}))
	// Output:
	// yes
	// yes
	// no
	// unclassified
}

func ExampleSequence() {
	ids := flow.NewSequence()
	fmt.Println(ids.NodeID())
	fmt.Println(ids.NodeID())
	fmt.Println(ids.EdgeID())
	// Output:
	// node-1
	// node-2
	// edge-1
}
