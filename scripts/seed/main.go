package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/meridian-ims/meridian-ims/internal/ledger"
)

// Loads the demo ledger into a fresh engine and prints the accepted
// movements plus the resulting balances, for inspecting the fixture
// without starting the server.
func main() {
	engine := ledger.NewEngine()
	accepted := ledger.SeedDemo(engine)

	fmt.Printf("→ Seeded %d of %d demo movements\n", len(accepted), len(ledger.DemoMovements()))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(accepted); err != nil {
		log.Fatalf("encode movements: %v", err)
	}

	fmt.Println("→ On-hand summary")
	if err := enc.Encode(engine.Summary()); err != nil {
		log.Fatalf("encode summary: %v", err)
	}
}
