package userRepo

import (
	"context"

	"salonbook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoUserRepo) Create(ctx context.Context, user *models.User) (string, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

func (r *mongoUserRepo) Update(ctx context.Context, user *models.User) error {
	update := bson.M{"$set": bson.M{
		"username":     user.Username,
		"fname":        user.Fname,
		"lname":        user.Lname,
		"email":        user.Email,
		"phone_number": user.PhoneNumber,
		"address":      user.Address,
		"age":          user.Age,
		"specialty":    user.Specialty,
		"pay_rate":     user.PayRate,
		"access_level": user.AccessLevel,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": user.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoUserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoUserRepo) SetWarning(ctx context.Context, id, warning string, count int) error {
	update := bson.M{"$set": bson.M{
		"warning":       warning,
		"warning_count": count,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoUserRepo) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"active": active}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
