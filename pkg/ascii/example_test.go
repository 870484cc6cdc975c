package ascii_test

import (
	"fmt"

	"github.com/promptdeck/flownote/pkg/ascii"
	"github.com/promptdeck/flownote/pkg/flow"
)

func ExampleDetect() {
	// A diagram embedded in free-form prose
	text := `Hola! El flujo de la conversación es:

┌──────────┐
│  Inicio  │
└──────────┘
      │
      ▼
┌──────────┐
│   Fin    │
└──────────┘

Saludos.`

	det := ascii.Detect(text)
	if det == nil {
		fmt.Println("no diagram")
		return
	}

	fmt.Printf("confidence: %.1f\n", det.Confidence)
	fmt.Printf("lines: %d-%d\n", det.StartLine, det.EndLine)

	// Bounds lets the caller splice the block out of the original text.
	start, end := det.Bounds(text)
	fmt.Println("splice matches:", text[start:end] == det.RawBlock)
	// Output:
	// confidence: 0.7
	// lines: 2-9
	// splice matches: true
}

func ExampleParse() {
	block := `┌──────────┐
│  Inicio  │
└──────────┘
      │
      ▼
┌──────────┐
│ Procesar │
└──────────┘
      │
      ▼
┌──────────┐
│   Fin    │
└──────────┘`

	d := ascii.Parse(block)
	if d == nil {
		fmt.Println("no boxes")
		return
	}

	for _, n := range d.Nodes {
		fmt.Printf("%s %s %s\n", n.ID, n.Type, n.Label)
	}
	fmt.Println("edges:", len(d.Edges))
	// Output:
	// node-1 start Inicio
	// node-2 action Procesar
	// node-3 end Fin
	// edges: 2
}

func ExampleGenerate() {
	d := flow.Data{
		Nodes: []flow.Node{
			{ID: "node-1", Type: flow.NodeStart, Label: "Inicio"},
			{ID: "node-2", Type: flow.NodeEnd, Label: "Fin", Position: flow.Position{Y: 150}},
		},
		Edges: []flow.Edge{
			{ID: "edge-1", Source: "node-1", Target: "node-2"},
		},
	}

	fmt.Println(ascii.Generate(d))
	// Output:
	// ┌─────────────┐
	// │   Inicio    │
	// └─────────────┘
	//        │
	//        ▼
	// ┌─────────────┐
	// │     Fin     │
	// └─────────────┘
}
