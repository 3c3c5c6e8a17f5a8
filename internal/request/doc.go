// Package request turns derivation annotations into derive.Request values.
//
// Annotations come from two places:
//
//   - a YAML request file listing targets (and, optionally, statically
//     declared source schemas)
//   - //derive: comment directives found in the scanned Go packages
//
// # YAML file
//
//	version: "1"
//	package: derive-generator/examples/shop/dto  # import path of the targets
//	dir: examples/shop/dto                       # where generated files go
//	packages: [./store, ./warehouse]             # package patterns to analyze
//	targets:
//	  - name: OrderSummary
//	    strategy: pick                           # pick | union | readonly | required
//	    source: store.Order                      # a string or a list
//	    properties: [ID, TotalCents]             # pick only
//	schemas:
//	  - name: Ledger
//	    package: example.com/legacy
//	    members:
//	      - {name: Account, type: string, visibility: public}
//	      - {name: Registry, type: string, static: true}
//
// # Directives
//
//	//derive:pick OrderSummary store.Order ID TotalCents
//	//derive:union Fulfilment store.Order,warehouse.Shipment
//	//derive:readonly OrderView store.Order
//	//derive:required CustomerDraft store.Customer
//
// The Resolver looks every source up through a schema.Provider. Requests that
// cannot be resolved fail with a *ResolutionError; member names are not
// checked here.
package request
