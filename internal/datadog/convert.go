package datadog

import (
	"encoding/json"
	"fmt"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV1"

	"alertstate/internal/monitor"
)

// The SDK models keep unknown or unparsable fields and write them back on
// marshal, so going through JSON forwards options the models don't know.

func toMonitor(r monitor.Record) (datadogV1.Monitor, error) {
	var m datadogV1.Monitor
	if err := bridge(r, &m); err != nil {
		return datadogV1.Monitor{}, fmt.Errorf("failed to convert monitor %q: %w", r.Name, err)
	}
	return m, nil
}

func toUpdateRequest(r monitor.Record) (datadogV1.MonitorUpdateRequest, error) {
	var req datadogV1.MonitorUpdateRequest
	if err := bridge(r, &req); err != nil {
		return datadogV1.MonitorUpdateRequest{}, fmt.Errorf("failed to convert monitor %q: %w", r.Name, err)
	}
	return req, nil
}

func fromMonitor(m datadogV1.Monitor) (monitor.Record, error) {
	var r monitor.Record
	if err := bridge(m, &r); err != nil {
		return monitor.Record{}, fmt.Errorf("failed to read monitor %d: %w", m.GetId(), err)
	}
	return r, nil
}

func bridge(in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
