// Package c8yclient provides the primary entry point for constructing a
// Cumulocity IoT REST client that implements the c8y.Client interface.
//
// It normalizes the tenant URL, selects the authentication adapter from the
// configuration and wires the resource clients defined in the c8y package.
// Most applications import c8yclient to build a client and then use the
// returned c8y.Client to reach a resource group, for example ManagedObjects(),
// Measurements() or Alarms().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/c8y-client/pkg/c8y"
//	  "github.com/fivetwenty-io/c8y-client/pkg/c8yclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Basic authentication as <tenant>/<user>.
//	  cli, err := c8yclient.New(ctx, &c8y.Config{
//	    BaseURL:  "example.cumulocity.com",
//	    Tenant:   "t12345",
//	    Username: "device-admin",
//	    Password: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with a bearer token you already have:
//	  cli, err = c8yclient.NewWithToken(ctx, "https://example.cumulocity.com", "eyJhbGciOi...")
//
//	  devices, err := cli.ManagedObjects().List(ctx, &c8y.ManagedObjectListParams{
//	    FragmentType: c8y.String("c8y_IsDevice"),
//	  })
//	  if err != nil { log.Fatal(err) }
//	  _ = devices
//	}
//
// # Processing mode
//
// Mutating calls accept c8y.WithProcessingMode to send data as TRANSIENT,
// QUIESCENT or CEP instead of PERSISTENT.
package c8yclient
