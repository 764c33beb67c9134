package token_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/service/token"
)

func TestIssueAndVerify(t *testing.T) {
	svc := token.New([]byte("test-secret"))
	actor := &model.Actor{PublicID: types.PublicID("actor-123")}

	raw, err := svc.Issue(actor)
	gt.NoError(t, err).Required()

	publicID, err := svc.Verify(raw)
	gt.NoError(t, err).Required()
	gt.Value(t, publicID).Equal(actor.PublicID)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	svc := token.New([]byte("test-secret"))
	other := token.New([]byte("other-secret"))
	actor := &model.Actor{PublicID: types.PublicID("actor-123")}

	raw, err := svc.Issue(actor)
	gt.NoError(t, err).Required()

	_, err = other.Verify(raw)
	gt.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := token.New([]byte("test-secret"), token.WithTTL(-time.Minute))
	actor := &model.Actor{PublicID: types.PublicID("actor-123")}

	raw, err := svc.Issue(actor)
	gt.NoError(t, err).Required()

	_, err = svc.Verify(raw)
	gt.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := token.New([]byte("test-secret"))
	_, err := svc.Verify("not-a-token")
	gt.Error(t, err)
}
