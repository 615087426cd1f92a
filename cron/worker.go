// Package cron runs the background payment-reconciliation worker. When a
// payment commits but its paired booking update is lost (no replica set, or
// a mid-write failure), the repair lands here: targeted jobs queued by the
// payment service plus a periodic sweep that catches anything missed.
package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"nyumbani/config"
	paymentRepo "nyumbani/database/repository/payment"
	"nyumbani/models"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	TypePaymentReconcile = "payment:reconcile"
	TypeReconcileSweep   = "payment:reconcile_sweep"
)

// ReconcilePayload identifies the payment to repair.
type ReconcilePayload struct {
	PaymentID string `json:"paymentId"`
}

// Client enqueues reconciliation jobs. It satisfies the payment service's
// Reconciler interface.
type Client struct {
	inner *asynq.Client
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkerDB,
	}
}

// NewClient returns an enqueue-only client.
func NewClient() *Client {
	return &Client{inner: asynq.NewClient(redisOpts())}
}

// EnqueueReconcile queues a repair for one payment. Retries are left to
// asynq's default backoff.
func (c *Client) EnqueueReconcile(paymentID string) error {
	payload, err := json.Marshal(ReconcilePayload{PaymentID: paymentID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypePaymentReconcile, payload, asynq.MaxRetry(10))
	_, err = c.inner.Enqueue(task)
	return err
}

// InitReconcileWorker starts the async worker and the periodic sweep in the
// background.
func InitReconcileWorker(payments paymentRepo.PaymentRepository, rec *Reconciler) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePaymentReconcile, handleReconcileTask(payments, rec))
	mux.HandleFunc(TypeReconcileSweep, handleSweepTask(payments, rec))

	go func() {
		log.Println("[ReconcileWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReconcileWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReconcileWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go startSweepScheduler()
}

// startSweepScheduler queues the periodic consistency sweep.
func startSweepScheduler() {
	scheduler := asynq.NewScheduler(redisOpts(), &asynq.SchedulerOpts{})

	task := asynq.NewTask(TypeReconcileSweep, nil)
	if _, err := scheduler.Register("@every 5m", task); err != nil {
		log.Printf("[ReconcileWorker] failed to register sweep: %v", err)
		return
	}
	if err := scheduler.Run(); err != nil {
		log.Printf("[ReconcileWorker] sweep scheduler stopped: %v", err)
	}
}

func handleReconcileTask(payments paymentRepo.PaymentRepository, rec *Reconciler) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ReconcilePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReconcileHandler] invalid payload: %v", err)
			return err
		}

		payment, err := payments.GetByID(p.PaymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			log.Printf("[ReconcileHandler] payment %s no longer exists, dropping", p.PaymentID)
			return nil
		}

		repaired, err := rec.Repair(ctx, payment)
		if err != nil {
			return err
		}
		if repaired {
			log.Printf("[ReconcileHandler] repaired booking for payment %s", payment.ID)
		}
		return nil
	}
}

// handleSweepTask walks all paid payments and repairs any whose booking was
// left behind.
func handleSweepTask(payments paymentRepo.PaymentRepository, rec *Reconciler) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		paid, err := payments.List(bson.M{"paymentStatus": models.PaymentStatusPaid})
		if err != nil {
			return err
		}

		repaired := 0
		for i := range paid {
			ok, err := rec.Repair(ctx, &paid[i])
			if err != nil {
				log.Printf("[ReconcileSweep] repair failed for payment %s: %v", paid[i].ID, err)
				continue
			}
			if ok {
				repaired++
			}
		}
		if repaired > 0 {
			log.Printf("[ReconcileSweep] repaired %d booking(s)", repaired)
		}
		return nil
	}
}
