package hiring

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	log "github.com/sirupsen/logrus"

	"github.com/Windi-Fikriyansyah/gigflow/internal/apperrors"
	"github.com/Windi-Fikriyansyah/gigflow/internal/models"
	"github.com/Windi-Fikriyansyah/gigflow/internal/repository"
	"github.com/Windi-Fikriyansyah/gigflow/internal/services/notify"
)

type Config struct {
	MaxRetries    int
	RetryBase     time.Duration
	NotifyTimeout time.Duration
}

// Service hires one bid per gig: the bid becomes hired, every pending
// sibling rejected and the gig assigned, all in one transaction.
type Service struct {
	repo     *repository.Repository
	notifier notify.Notifier
	cfg      Config
	inflight sync.WaitGroup
}

type Result struct {
	Bid      *models.Bid
	Gig      *models.Gig
	Rejected int64
}

func NewService(repo *repository.Repository, notifier notify.Notifier, cfg Config) *Service {
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 50 * time.Millisecond
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = 5 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &Service{repo: repo, notifier: notifier, cfg: cfg}
}

// Hire lets the owner of the bid's gig hire that bid.
//
// Checks run in this order and each maps to one error: bid exists
// (ErrBidNotFound), gig exists (ErrGigNotFound), actor owns the gig
// (ErrNotGigOwner), bid not already hired (ErrAlreadyHired), no other bid
// hired and gig still open (ErrGigAssigned). They are evaluated against the
// locked gig row, so a failed check leaves the store untouched.
func (s *Service) Hire(ctx context.Context, actorID, bidID uuid.UUID) (*Result, error) {
	var res Result

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		bid, err := tx.FindBid(ctx, bidID)
		if err != nil {
			return err
		}

		gig, err := tx.LockGig(ctx, bid.GigID)
		if err != nil {
			if errors.Is(err, apperrors.ErrGigNotFound) {
				log.WithFields(log.Fields{"bid_id": bid.ID, "gig_id": bid.GigID}).Error("bid references a missing gig")
			}
			return err
		}

		// Re-read under the gig lock; a concurrent hire may have committed.
		bid, err = tx.FindBid(ctx, bidID)
		if err != nil {
			return err
		}

		if gig.OwnerID != actorID {
			return apperrors.ErrNotGigOwner
		}
		if bid.FreelancerID == gig.OwnerID {
			return apperrors.ErrSelfBid
		}
		if bid.Status == models.BidStatusHired {
			return apperrors.ErrAlreadyHired
		}

		hired, err := tx.CountHiredBids(ctx, gig.ID, bid.ID)
		if err != nil {
			return err
		}
		if hired > 0 || gig.Status != models.GigStatusOpen || bid.Status.Terminal() {
			return apperrors.ErrGigAssigned
		}

		if err := tx.AssignGig(ctx, gig.ID); err != nil {
			return err
		}
		if err := tx.MarkBidHired(ctx, bid.ID); err != nil {
			return err
		}
		rejected, err := tx.RejectPendingBids(ctx, gig.ID, bid.ID)
		if err != nil {
			return err
		}

		if bid, err = tx.FindBid(ctx, bidID); err != nil {
			return err
		}
		gig.Status = models.GigStatusAssigned
		res = Result{Bid: bid, Gig: gig, Rejected: rejected}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("hire bid %s: %w", bidID, err)
	}

	log.WithFields(log.Fields{
		"gig_id":        res.Gig.ID,
		"bid_id":        res.Bid.ID,
		"freelancer_id": res.Bid.FreelancerID,
		"rejected":      res.Rejected,
	}).Info("freelancer hired")

	s.notifyHired(ctx, res.Bid, res.Gig)
	return &res, nil
}

// HireWithRetry re-runs Hire, checks included, while it fails with a
// transient store error. Every other outcome is returned as is.
func (s *Service) HireWithRetry(ctx context.Context, actorID, bidID uuid.UUID) (*Result, error) {
	var res *Result
	backoff := retry.WithMaxRetries(uint64(s.cfg.MaxRetries), retry.NewExponential(s.cfg.RetryBase))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		r, err := s.Hire(ctx, actorID, bidID)
		if errors.Is(err, apperrors.ErrTransient) {
			log.WithField("bid_id", bidID).WithError(err).Warn("hire failed transiently, retrying")
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		if ctx.Err() != nil && !errors.Is(err, apperrors.ErrTransient) {
			return nil, apperrors.Transient("hire", err)
		}
		return nil, err
	}
	return res, nil
}

// notifyHired hands the event to the notifier after commit. It never blocks
// the caller and its failures are only logged.
func (s *Service) notifyHired(ctx context.Context, bid *models.Bid, gig *models.Gig) {
	n := notify.Notification{
		Kind:     models.NotificationHired,
		Severity: models.SeveritySuccess,
		Message:  fmt.Sprintf("You have been hired for %q", gig.Title),
		Payload: HiredPayload{
			GigID:    gig.ID.String(),
			GigTitle: gig.Title,
			BidID:    bid.ID.String(),
		},
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.NotifyTimeout)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer cancel()
		if err := s.notifier.Send(sendCtx, bid.FreelancerID, n); err != nil {
			log.WithFields(log.Fields{
				"recipient": bid.FreelancerID,
				"gig_id":    gig.ID,
				"kind":      n.Kind,
			}).WithError(err).Warn("hire notification not delivered")
		}
	}()
}

// Drain waits for notifications still being dispatched.
func (s *Service) Drain() {
	s.inflight.Wait()
}

type HiredPayload struct {
	GigID    string `json:"gig_id"`
	GigTitle string `json:"gig_title"`
	BidID    string `json:"bid_id"`
}
