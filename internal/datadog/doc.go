// Package datadog is the remote side of the reconciler. It lists, creates,
// updates and deletes monitors through the Datadog v1 monitors API.
//
// A Client is one authenticated session. It is opened once per command run
// and closed when the run ends:
//
//	client, err := datadog.Open(datadog.Options{Site: "datadoghq.eu", APIKey: k, AppKey: a})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	remote, err := client.ListMonitors(ctx, "checkout")
//
// Every refused call is reported as a *monitor.APIError so the reconciler
// can tell a rate limit from a permanent rejection without knowing about the
// SDK.
package datadog
