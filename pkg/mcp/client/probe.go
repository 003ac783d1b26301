package client

import (
	"context"
	"errors"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ProbeStatus is the outcome of a reachability check
type ProbeStatus int

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ProbeDown     ProbeStatus = iota // No response
	ProbeDegraded                    // Responded with a non-success status
	ProbeOK                          // Responded with a success status
)

const (
	ProbeTimeout = 5 * time.Second
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Probe checks whether the tool host root URL responds within the probe
// timeout. The error describes why the status is not ProbeOK.
func Probe(ctx context.Context, url string, opts ...client.ClientOpt) (ProbeStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	c, err := client.New(append([]client.ClientOpt{
		client.OptEndpoint(url),
		client.OptTimeout(ProbeTimeout),
	}, opts...)...)
	if err != nil {
		return ProbeDown, err
	}

	// Any response with a status code means the host is up
	if err := c.DoWithContext(ctx, nil, nil); err != nil {
		var httpErr httpresponse.Err
		if errors.As(err, &httpErr) {
			return ProbeDegraded, err
		}
		return ProbeDown, err
	}

	return ProbeOK, nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (s ProbeStatus) String() string {
	switch s {
	case ProbeOK:
		return "ok"
	case ProbeDegraded:
		return "degraded"
	default:
		return "down"
	}
}
