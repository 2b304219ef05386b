// Package c8y provides types, interfaces, and helpers for working with the
// Cumulocity IoT REST API.
//
// # Overview
//
// The c8y package defines the domain models (ManagedObject, Measurement,
// Event, Alarm, Operation, Application, ...) together with the narrow write
// models accepted on create and update, and the interfaces of the resource
// clients (ManagedObjectsClient, MeasurementsClient, ...). A concrete
// implementation is provided by the c8yclient package, which wires
// configuration, transport, and authentication. Most consumers import
// c8yclient to construct a client and then use the interfaces declared here.
//
// Getting a client
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
//	  cli, err := c8yclient.New(ctx, &c8y.Config{
//	    BaseURL:  "https://example.cumulocity.com",
//	    Tenant:   "t12345",
//	    Username: "user",
//	    Password: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  devices, err := cli.ManagedObjects().List(ctx, &c8y.ManagedObjectListParams{
//	    FragmentType: c8y.String("c8y_IsDevice"),
//	  })
//	  if err != nil { log.Fatal(err) }
//	  _ = devices
//	}
//
// # Query parameters
//
// Every list endpoint takes a params struct whose fields are pointers or
// slices. A nil field is never sent, not even as an empty "name=" pair, which
// matters for endpoints the server validates on presence alone. List fields
// such as ManagedObjectListParams.IDs are sent comma separated; series on
// MeasurementSeriesParams are sent as repeated keys.
//
// # Write models
//
// Create and update calls accept dedicated write models (ManagedObjectCreate,
// AlarmUpdate, ...) that only contain fields the platform accepts. Server
// assigned fields such as id, self, creationTime, or count cannot be sent.
// Custom fragments are carried in the Fragments map of both read and write
// models.
//
// # Errors
//
// Non-2xx responses surface as *ServerError when the body is the platform
// error envelope ({"error": ..., "message": ...}) and as *HTTPError otherwise.
// Both carry the status code and are classified with containerd/errdefs, so
// IsNotFound, IsUnauthorized, IsForbidden, and IsConflict work on either.
// Transport failures are *TransportError, undecodable success bodies are
// *DecodeError, and write models that cannot be encoded are *EncodeError. No
// call is ever retried.
//
// # Adapters
//
// Every outgoing request passes exactly once through a single Adapter. The
// c8yclient package composes the authentication adapter with the adapter in
// Config.Adapter using ChainAdapters.
package c8y
