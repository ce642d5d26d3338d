/*
Package conduit validates network-automation workflow graphs and resolves
the {{...}} expressions their node parameters carry.

It treats a workflow as data: a graph of typed nodes and edges that is
always loadable, even when it is invalid as a program. The validator
reports every structural, type, and platform problem as a diagnostic
rather than refusing the document, so an editor can render the graph
and its issues side by side.

# Concept

Four concerns make up the core:

  - Upstream resolution: which node outputs are referenceable from a
    given node, following trigger edges backward.
  - Validation: port kind and type compatibility, platform overlap,
    required inputs, reachability, and cycle detection over the
    trigger subgraph.
  - Expressions: a {{...}} micro-syntax with cursor-aware completion
    and total resolution (missing references become "" plus a warning,
    never an error).
  - Persistence: a canonical JSON document shape, plus a migrator that
    lifts legacy flat job documents into graphs.

The Hexagonal Architecture keeps the core decoupled from hosting
surfaces; the same engine backs the CLI, the HTTP API, and the MCP
server, with workflow stores (memory, file, Redis) behind a port.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/fieldline/conduit"
	)

	func main() {
		eng, err := conduit.New()
		if err != nil {
			log.Fatal(err)
		}

		w, err := eng.Deserialize(document)
		if err != nil {
			log.Fatal(err)
		}

		report := eng.Validate(w)
		for _, issue := range report.Issues {
			fmt.Printf("%s: %s\n", issue.Severity, issue.Message)
		}
	}

Custom node types merge over the builtin catalog via WithCatalogFiles;
see pkg/catalog for the YAML format.
*/
package conduit
