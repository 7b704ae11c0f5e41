package sessions

import (
	"context"
	"testing"
	"time"

	"doseup-parent/internal/domain/parents"
	"doseup-parent/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakes

type fakeOTP struct {
	started []string
}

func (f *fakeOTP) Start(_ context.Context, phone string) (auth.Challenge, error) {
	f.started = append(f.started, phone)
	return auth.Challenge{ID: "ch-" + phone, Phone: phone, ExpiresAt: time.Now().Add(time.Minute)}, nil
}

func (f *fakeOTP) Confirm(_ context.Context, ch auth.Challenge, code string) error {
	if ch.ID != "ch-"+ch.Phone {
		return auth.ErrInvalidCode
	}
	if code != "123456" {
		return auth.ErrInvalidCode
	}
	return nil
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(_ context.Context, c auth.Claims) (string, time.Time, error) {
	return "tok:" + c.AdminID + "/" + c.ParentID, time.Time{}, nil
}

type fakeFinder map[string]parents.Parent

func (f fakeFinder) FindByPhone(_ context.Context, phone string) (parents.Parent, error) {
	p, ok := f[phone]
	if !ok {
		return parents.Parent{}, parents.ErrNotFound
	}
	return p, nil
}

func newTestService() (*Service, *fakeOTP) {
	otp := &fakeOTP{}
	finder := fakeFinder{
		"+51999111222": {ID: "p-1", AdminID: "a-1", PhoneNumber: "+51999111222", Name: "Mamá"},
	}
	return NewService(otp, fakeIssuer{}, finder), otp
}

func TestStartVerification_NormalizesToE164(t *testing.T) {
	svc, otp := newTestService()

	v, err := svc.StartVerification(context.Background(), " 51999111222 ")
	require.NoError(t, err)
	assert.Equal(t, "+51999111222", v.Phone)
	assert.Equal(t, []string{"+51999111222"}, otp.started)

	_, err = svc.StartVerification(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConfirmVerification(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	v, err := svc.StartVerification(ctx, "+51999111222")
	require.NoError(t, err)

	_, err = svc.ConfirmVerification(ctx, v, "000000")
	assert.ErrorIs(t, err, auth.ErrInvalidCode)

	_, err = svc.ConfirmVerification(ctx, v, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	s, err := svc.ConfirmVerification(ctx, v, "123456")
	require.NoError(t, err)
	assert.Equal(t, "tok:a-1/p-1", s.Token)
	assert.Equal(t, "p-1", s.Parent.ID)
}

func TestConfirmVerification_UnknownPhone(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	v, err := svc.StartVerification(ctx, "+51000000000")
	require.NoError(t, err)

	_, err = svc.ConfirmVerification(ctx, v, "123456")
	assert.ErrorIs(t, err, ErrNoParent)
}

func TestVerificationsAreIndependent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.StartVerification(ctx, "+51999111222")
	require.NoError(t, err)
	b, err := svc.StartVerification(ctx, "+51000000000")
	require.NoError(t, err)

	// confirmar b primero no afecta a
	_, err = svc.ConfirmVerification(ctx, b, "123456")
	assert.ErrorIs(t, err, ErrNoParent)

	s, err := svc.ConfirmVerification(ctx, a, "123456")
	require.NoError(t, err)
	assert.Equal(t, "p-1", s.Parent.ID)
}
