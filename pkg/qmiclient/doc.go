// Package qmiclient is the Go runtime behind generated QMI client bindings.
//
// A Client is bound to one QMI service and one client id allocated on a
// Device. Requests are issued with Call, which returns an Operation that
// completes asynchronously once the reply matching the request's
// transaction id arrives:
//
//	c, err := qmiclient.NewClient(router, "DMS", cid, qmiclient.Config{
//	    Logger: slog.Default(),
//	    Abort:  &dmsAbort,
//	})
//	op := qmiclient.Call(ctx, c, dms.Service.Messages[0], input, getIDsCodec, 10*time.Second)
//	ids, err := op.Finish()
//
// Messages declared abortable send a best-effort Abort request carrying the
// original transaction id when the call fails with ErrTimeout or with the
// protocol "aborted" error. The abort runs detached from the original call;
// its outcome only reaches the operational log, the protocol log and the
// metrics, while the caller always receives the original error.
//
// Indications are registered with OnIndication and OnEmptyIndication and
// dispatched by ProcessIndication in delivery order. Indications that fail
// to parse are logged and dropped.
//
// Router implements Device on top of a plain Sender, correlating replies to
// requests by client id and transaction id.
//
// The registry files emitted by qmi-codegen declare the ServiceSpec values
// this package consumes.
package qmiclient
