// Package metrics records conversion metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no call site needs a nil check:
//
//	recorder := metrics.NewPrometheusRecorder(nil)
//	driver := convert.New(opts, convert.WithRecorder(recorder))
//	...
//	err := recorder.WriteTextfile("/var/lib/node_exporter/mdhtml.prom")
//
// PrometheusRecorder writes the node-exporter textfile format; a one-shot
// command has no scrape endpoint.
package metrics
