// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

/*
Package supervisor provides process supervision for Framescout using suture v4.

The supervisor tree organizes long-running services into three layers:

	RootSupervisor ("framescout")
	├── DataSupervisor ("data-layer")
	│   └── MaintenanceService (embedding store value log GC)
	├── MessagingSupervisor ("messaging-layer")
	│   └── EventRouterService (feedback commit consumer, if events enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crash in the event router does not interrupt search traffic, and each
layer counts failures independently. Crashed services restart with
suture's backoff; context cancellation shuts the tree down in order.

Supervisor events (start, stop, failure, backoff) are logged through the
sutureslog hook.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))
	errCh := tree.ServeBackground(ctx)
*/
package supervisor
