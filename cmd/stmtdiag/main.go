// stmtdiag manages statement diagnostics requests.
//
// A request asks the capture subsystem to record a diagnostics trace for
// the next execution of a statement fingerprint. At most one request per
// fingerprint is pending at a time.
//
// Usage:
//
//	# List requests that are pending or completed
//	stmtdiag list --format json
//
//	# Request a trace for executions slower than 250ms within the next hour
//	stmtdiag create --fingerprint "SELECT _ FROM t WHERE id = _" \
//	    --min-latency 0.25 --expires-after 3600
//
//	# Cancel a pending request
//	stmtdiag cancel 42
//
//	# Run the monitor with health and metrics endpoints
//	stmtdiag serve --config /etc/stmtdiag/stmtdiag.yaml
package main

func main() {
	Execute()
}
