package booking

import (
	"context"

	paymentRepo "nyumbani/database/repository/payment"
	"nyumbani/models"

	"go.mongodb.org/mongo-driver/bson"
)

type fakePaymentRepo struct {
	payments map[string]*models.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[string]*models.Payment{}}
}

func (r *fakePaymentRepo) Create(p *models.Payment) error {
	copy := *p
	r.payments[p.ID] = &copy
	return nil
}

func (r *fakePaymentRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	p := r.payments[id]
	if amount, ok := updateDoc["totalAmount"].(float64); ok {
		p.TotalAmount = amount
	}
	if status, ok := updateDoc["paymentStatus"].(string); ok {
		p.PaymentStatus = status
	}
	return nil
}

func (r *fakePaymentRepo) GetByID(id string) (*models.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	copy := *p
	return &copy, nil
}

func (r *fakePaymentRepo) FindOne(filter bson.M) (*models.Payment, error) {
	for _, p := range r.payments {
		if id, ok := filter["bookingId"].(string); ok && p.BookingID != id {
			continue
		}
		if typ, ok := filter["paymentType"].(string); ok && p.PaymentType != typ {
			continue
		}
		copy := *p
		return &copy, nil
	}
	return nil, nil
}

func (r *fakePaymentRepo) List(filter bson.M) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePaymentRepo) UpdateWithSideEffect(ctx context.Context, paymentID string, paymentSet bson.M, side *paymentRepo.SideWrite) error {
	return r.UpdateSetDocument(paymentID, paymentSet)
}
