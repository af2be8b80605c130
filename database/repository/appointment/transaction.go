package appointmentRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// withTxn runs fn inside a mongo session transaction. Any error aborts the
// whole transaction; nothing written inside fn survives a failure.
func (r *mongoAppointmentRepo) withTxn(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.apptColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
