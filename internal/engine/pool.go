// Package engine implements the order-processing worker pool: the FIFO
// work queue, the shared guarded state workers serialize their steps
// through, and the per-order state machine that drives an accepted order
// from Queued to a terminal status.
package engine

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/brokerx/engine/internal/models"
	"github.com/brokerx/engine/internal/repository/interfaces"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultWorkerCount = 4
	waitTimeout        = time.Second
	stepBackoff        = 10 * time.Millisecond
)

// Diagnostics is a point-in-time snapshot of pool health, consumed by the
// broker facade's read path and the monitoring dashboard.
type Diagnostics struct {
	QueueLength  int
	WorkerCount  int
	StatusCounts map[string]int
}

// Pool owns N long-lived worker goroutines that drain the shared queue
// and drive each popped order through one state-machine step.
type Pool struct {
	state       *sharedState
	priceSource ExecutionPriceSource
	workers     int
	wg          sync.WaitGroup
}

// New constructs a pool with workers goroutines (default 4 if <= 0) and
// immediately recovers any non-terminal orders found in the repository
// into the queue, before any worker is released.
func New(ctx context.Context, orderRepo interfaces.OrderRepository, userRepo interfaces.UserRepository, priceSource ExecutionPriceSource, workers int) (*Pool, error) {
	if workers <= 0 {
		workers = defaultWorkerCount
	}
	if priceSource == nil {
		priceSource = DefaultPriceSource()
	}
	p := &Pool{
		state:       newSharedState(orderRepo, userRepo),
		priceSource: priceSource,
		workers:     workers,
	}
	if err := p.recoverNonTerminalOrders(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// recoverNonTerminalOrders pushes the id of every order with a
// non-terminal status (Queued, Pending, PendingCancel) onto the queue.
// This is the only persistence contract the pool depends on across a
// restart.
func (p *Pool) recoverNonTerminalOrders(ctx context.Context) error {
	for _, status := range models.NonTerminalStatuses {
		orders, err := p.state.orderRepo.FindByStatus(ctx, status)
		if err != nil {
			return err
		}
		for _, o := range orders {
			p.state.enqueue(o.ID)
		}
	}
	return nil
}

// Start launches the worker goroutines. Call Stop to shut them down.
func (p *Pool) Start(ctx context.Context) {
	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.workerLoop(ctx, i)
	}
	go p.ticker()
}

// ticker periodically wakes idle workers so shutdown and newly-recovered
// work are always noticed within the wait timeout even without a fresh
// enqueue — the Go substitute for a condition variable's timed wait.
func (p *Pool) ticker() {
	t := time.NewTicker(waitTimeout)
	defer t.Stop()
	for {
		select {
		case <-p.state.stopCh:
			return
		case <-t.C:
			p.state.wake()
		}
	}
}

// Stop clears the run flag, closes the stop channel, and waits for every
// worker to observe it and exit.
func (p *Pool) Stop() {
	p.state.stop()
	p.wg.Wait()
}

func (p *Pool) workerLoop(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.state.stopCh:
			return
		default:
		}

		orderID, ok := p.state.pop()
		if !ok {
			select {
			case <-p.state.stopCh:
				return
			case <-p.state.notify:
			case <-time.After(waitTimeout):
			}
			continue
		}

		p.processOrder(ctx, orderID)
		time.Sleep(stepBackoff)
	}
}

// Enqueue pushes an existing order id onto the queue tail. Used by the
// broker facade after inserting a freshly-created order.
func (p *Pool) Enqueue(id uuid.UUID) {
	p.state.enqueue(id)
}

// CancelOrder transitions a Queued or Pending order to PendingCancel and
// re-enqueues it so a worker finalizes it to Cancelled. Any other
// starting status returns ErrCantCancel without mutation.
func (p *Pool) CancelOrder(ctx context.Context, id uuid.UUID) error {
	p.state.mu.Lock()
	order, err := p.state.orderRepo.Get(ctx, id)
	if err != nil {
		p.state.mu.Unlock()
		return err
	}
	if order == nil {
		p.state.mu.Unlock()
		return ErrOrderNotFound
	}
	if order.Status != models.StatusQueued && order.Status != models.StatusPending {
		p.state.mu.Unlock()
		return ErrCantCancel
	}
	order.TransitionTo(models.StatusPendingCancel, time.Now())
	err = p.state.orderRepo.Update(ctx, id, *order)
	p.state.mu.Unlock()
	if err != nil {
		return err
	}
	p.state.enqueue(id)
	return nil
}

// processOrder dispatches a single step of the order's state machine. The
// shared-state lock is held for the full read-mutate-write sequence, in
// step with the repository handles it guards.
func (p *Pool) processOrder(ctx context.Context, id uuid.UUID) {
	p.state.mu.Lock()
	defer p.state.mu.Unlock()

	order, err := p.state.orderRepo.Get(ctx, id)
	if err != nil {
		log.Printf("engine: get order %s: %v", id, err)
		return
	}
	if order == nil {
		log.Printf("engine: order %s vanished from repository, dropping", id)
		return
	}

	switch order.Status {
	case models.StatusQueued:
		order.TransitionTo(models.StatusPending, time.Time{})
		if err := p.state.orderRepo.Update(ctx, id, *order); err != nil {
			log.Printf("engine: update order %s: %v", id, err)
			return
		}
		p.reenqueueLocked(id)

	case models.StatusPending:
		if rand.Intn(4) == 0 {
			p.attemptFill(ctx, order)
			return
		}
		if err := p.state.orderRepo.Update(ctx, id, *order); err != nil {
			log.Printf("engine: update order %s: %v", id, err)
			return
		}
		p.reenqueueLocked(id)

	case models.StatusPendingCancel:
		order.TransitionTo(models.StatusCancelled, time.Now())
		if err := p.state.orderRepo.Update(ctx, id, *order); err != nil {
			log.Printf("engine: update order %s: %v", id, err)
		}

	default:
		log.Printf("engine: order %s popped from queue in terminal status %s", id, order.Status)
	}
}

// reenqueueLocked re-appends id to the queue tail. Called while already
// holding state.mu, so it bypasses the locking enqueue/wake path and
// signals directly.
func (p *Pool) reenqueueLocked(id uuid.UUID) {
	if !p.state.queued[id] {
		p.state.queue = append(p.state.queue, id)
		p.state.queued[id] = true
	}
	p.state.wake()
}

// attemptFill executes the Pending->Filled|Rejected transition: withdraw
// or deposit the notional against the user's balance, update the
// holding on success, and write the terminal order back.
func (p *Pool) attemptFill(ctx context.Context, order *models.Order) {
	price := p.priceSource.ExecutionPrice(order.Symbol)
	notional := price.Mul(decimal.NewFromInt(int64(order.Quantity)))

	var ledgerErr error
	switch order.Side {
	case models.OrderSideBuy:
		_, ledgerErr = p.state.userRepo.WithdrawFromUser(ctx, order.ClientID, notional)
	case models.OrderSideSell:
		_, ledgerErr = p.state.userRepo.DepositToUser(ctx, order.ClientID, notional)
	}

	if ledgerErr != nil {
		order.TransitionTo(models.StatusRejected, time.Now())
		if err := p.state.orderRepo.Update(ctx, order.ID, *order); err != nil {
			log.Printf("engine: update rejected order %s: %v", order.ID, err)
		}
		return
	}

	delta := int64(order.Quantity)
	if order.Side == models.OrderSideSell {
		delta = -delta
	}
	if _, err := p.state.userRepo.UpdateUserHolding(ctx, order.ClientID, order.Symbol, delta, price); err != nil {
		log.Printf("engine: update holding for order %s: %v", order.ID, err)
	}

	order.TransitionTo(models.StatusFilled, time.Now())
	if err := p.state.orderRepo.Update(ctx, order.ID, *order); err != nil {
		log.Printf("engine: update filled order %s: %v", order.ID, err)
	}
}

// QueueDiagnostics returns a point-in-time snapshot of queue length,
// configured worker count, and per-status order counts.
func (p *Pool) QueueDiagnostics(ctx context.Context) (Diagnostics, error) {
	counts := make(map[string]int, 7)
	statuses := []string{
		models.StatusQueued, models.StatusPending, models.StatusFilled,
		models.StatusPendingCancel, models.StatusCancelled, models.StatusExpired,
		models.StatusRejected,
	}
	for _, status := range statuses {
		orders, err := p.state.orderRepo.FindByStatus(ctx, status)
		if err != nil {
			return Diagnostics{}, err
		}
		counts[status] = len(orders)
	}
	return Diagnostics{
		QueueLength:  p.state.queueLen(),
		WorkerCount:  p.workers,
		StatusCounts: counts,
	}, nil
}
