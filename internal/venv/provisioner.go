package venv

import (
	"context"

	"github.com/shinji-kodama/lvenv/internal/logging"
	"github.com/shinji-kodama/lvenv/internal/model"
)

// Outcome reports how provisioning went.
type Outcome struct {
	// Attempts is the number of Create calls made (1 or 2).
	Attempts int

	// SymlinkFallback is true when the retry with forced symlinks succeeded.
	SymlinkFallback bool
}

// Provisioner applies the creation policy on top of a Creator.
type Provisioner struct {
	creator Creator
}

// NewProvisioner returns a Provisioner that delegates to creator.
func NewProvisioner(creator Creator) *Provisioner {
	return &Provisioner{creator: creator}
}

// Provision creates the environment described by opts.
//
// If the first attempt fails for any reason it is retried exactly once with
// Symlinks forced to true and every other parameter unchanged. The first
// error is dropped. A failed retry is returned as an ExitProvisionFailed
// CLIError; whatever the builder left on disk stays there.
//
// TODO: only fall back when the first failure looks symlink-related; today a
// full disk or a permission error is retried as well and its cause is lost.
func (p *Provisioner) Provision(ctx context.Context, opts *model.Options) (Outcome, error) {
	if opts.Upgrade {
		logging.Debug("--upgrade is accepted but not forwarded to venv")
	}

	req := RequestFromOptions(opts)
	if err := p.creator.Create(ctx, req); err == nil {
		return Outcome{Attempts: 1}, nil
	}

	logging.Debug("first creation attempt failed, retrying with symlinks", "dir", req.Dir)
	req.Symlinks = true
	if err := p.creator.Create(ctx, req); err != nil {
		return Outcome{Attempts: 2}, model.WrapCLIError(model.ExitProvisionFailed, "failed to create virtual environment", err)
	}

	return Outcome{Attempts: 2, SymlinkFallback: true}, nil
}
