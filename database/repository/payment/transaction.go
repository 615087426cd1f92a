// File: database/repository/payment/transaction.go
package paymentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrSideEffectLost means the payment update committed but the paired
// booking update did not. The caller is expected to hand the repair off to
// the reconciliation sweep.
var ErrSideEffectLost = errors.New("payment updated but side-effect write failed")

// UpdateWithSideEffect applies a $set to the payment and, together with it,
// the given side write. On replica-set deployments both run inside one
// session transaction; otherwise they run sequentially and a failure of the
// second write surfaces as ErrSideEffectLost.
func (r *MongoPaymentRepo) UpdateWithSideEffect(ctx context.Context, paymentID string, paymentSet bson.M, side *SideWrite) error {
	paymentSet["updatedAt"] = time.Now()
	paymentFilter := bson.M{"id": paymentID}
	paymentUpdate := bson.M{"$set": paymentSet}

	if side == nil || !r.useTransactions {
		return r.updateSequential(ctx, paymentFilter, paymentUpdate, side)
	}

	sess, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		res, err := r.coll.UpdateOne(sc, paymentFilter, paymentUpdate)
		if err != nil {
			return fmt.Errorf("payment update failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("payment with id %s not found", paymentID)
		}

		if _, err := r.db.Collection(side.Collection).UpdateOne(sc, side.Filter, side.Update); err != nil {
			return fmt.Errorf("side-effect update failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("payment transaction failed: %w", err)
	}

	return nil
}

func (r *MongoPaymentRepo) updateSequential(ctx context.Context, paymentFilter, paymentUpdate bson.M, side *SideWrite) error {
	res, err := r.coll.UpdateOne(ctx, paymentFilter, paymentUpdate)
	if err != nil {
		return fmt.Errorf("payment update failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("payment not found")
	}

	if side == nil {
		return nil
	}
	if _, err := r.db.Collection(side.Collection).UpdateOne(ctx, side.Filter, side.Update); err != nil {
		return fmt.Errorf("%w: %v", ErrSideEffectLost, err)
	}
	return nil
}
