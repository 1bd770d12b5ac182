// Package porekit defines the public contracts of the fast5 metadata pipeline:
// the container capability consumed by extractors, the extractor plugin
// interface, the tabular output model, and the error taxonomy shared by every
// stage.
//
// Concrete implementations live under internal/. A typical run wires a
// scanner.Locator, a container opener, an extractor.Catalog and an
// aggregate.Aggregator together and hands the resulting Table to an export
// sink.
package porekit
