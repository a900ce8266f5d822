package resolvers

import (
	"context"

	"toolshare/models"
	"toolshare/services/messaging"
)

// Bookings expands bookings in order. References to deleted tools or users resolve to nil.
func (r *Resolver) Bookings(ctx context.Context, bookings []models.Booking) ([]models.BookingView, error) {
	userIDs := make([]string, 0, 2*len(bookings))
	toolIDs := make([]string, 0, len(bookings))
	for _, b := range bookings {
		userIDs = append(userIDs, b.RenterID, b.OwnerID)
		toolIDs = append(toolIDs, b.ToolID)
	}
	users, err := r.userSummaries(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	tools, err := r.toolSummaries(ctx, toolIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, models.BookingView{
			ID:              b.ID,
			Tool:            tools[b.ToolID],
			Renter:          users[b.RenterID],
			Owner:           users[b.OwnerID],
			Start:           b.Start,
			End:             b.End,
			Pricing:         b.Pricing,
			Deposit:         b.Deposit,
			Status:          b.Status,
			PaymentIntentID: b.PaymentIntentID,
			History:         b.History,
			CreatedAt:       b.CreatedAt,
			UpdatedAt:       b.UpdatedAt,
		})
	}
	return views, nil
}

func (r *Resolver) Booking(ctx context.Context, b *models.Booking) (*models.BookingView, error) {
	views, err := r.Bookings(ctx, []models.Booking{*b})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (r *Resolver) MyBookings(ctx context.Context, asRenter, asOwner []models.Booking) (*models.MyBookingsView, error) {
	all := append(append([]models.Booking{}, asRenter...), asOwner...)
	views, err := r.Bookings(ctx, all)
	if err != nil {
		return nil, err
	}
	return &models.MyBookingsView{
		AsRenter: views[:len(asRenter)],
		AsOwner:  views[len(asRenter):],
	}, nil
}

func (r *Resolver) Conversations(ctx context.Context, threads []messaging.Thread) ([]models.Conversation, error) {
	bookings := make([]models.Booking, 0, len(threads))
	for _, t := range threads {
		bookings = append(bookings, t.Booking)
	}
	views, err := r.Bookings(ctx, bookings)
	if err != nil {
		return nil, err
	}
	out := make([]models.Conversation, 0, len(threads))
	for i, t := range threads {
		out = append(out, models.Conversation{Booking: &views[i], LatestMessage: t.Latest, UnreadCount: t.Unread})
	}
	return out, nil
}

func (r *Resolver) Reviews(ctx context.Context, reviews []models.Review) ([]models.ReviewView, error) {
	ids := make([]string, 0, len(reviews))
	for _, rv := range reviews {
		ids = append(ids, rv.ReviewerID)
	}
	users, err := r.userSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]models.ReviewView, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, models.ReviewView{Review: rv, Reviewer: users[rv.ReviewerID]})
	}
	return out, nil
}
