// Package declared reads the declared state: one monitor definition per file
// in a project directory.
//
// Files ending in .json, .yaml or .yml are loaded in file name order. Each
// definition uses the Datadog monitor field names:
//
//	{
//	  "name": "cpu-high",
//	  "type": "metric alert",
//	  "query": "avg(last_5m):avg:system.cpu.user{service:checkout} > 90",
//	  "message": "CPU is high",
//	  "priority": 2,
//	  "tags": ["service:checkout"],
//	  "options": {"escalation_message": "CPU is still high"}
//	}
//
// Loading normalizes every record: the project tag is added to tags and the
// notification handle is appended to message and, when set, to
// options.escalation_message. Malformed files, missing required fields and
// duplicate names are all reported together and fail the load.
//
// Export writes remote monitors back as files with the normalization undone,
// so that a following reconciliation finds nothing to change.
package declared
