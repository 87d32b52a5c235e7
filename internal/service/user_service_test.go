package service

import (
	"errors"
	"testing"

	"Yatube/internal/api/dto"
	"Yatube/internal/pkg/consts"
	"Yatube/internal/pkg/security"
	"Yatube/internal/testutil"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterLoginLogout(t *testing.T) {
	mr := testutil.NewTestRedis(t)
	db := testutil.NewTestDB(t)
	ctx := testutil.Ctx()
	svc := NewUserService(newRepos(db).user)

	user, err := svc.Register(ctx, &dto.RegisterDTO{Username: "leo", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "leo", user.Username)

	_, err = svc.Register(ctx, &dto.RegisterDTO{Username: "leo", Password: "another1"})
	assert.ErrorIs(t, err, ErrUserExist)

	_, err = svc.Login(ctx, &dto.CredentialDTO{Username: "leo", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)
	_, err = svc.Login(ctx, &dto.CredentialDTO{Username: "ghost", Password: "secret123"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	token, err := svc.Login(ctx, &dto.CredentialDTO{Username: "leo", Password: "secret123"})
	require.NoError(t, err)
	claims, err := security.ValidateToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	require.NoError(t, svc.Logout(ctx, token.Token))
	sig, err := security.ExtractSignature(token.Token)
	require.NoError(t, err)
	assert.True(t, mr.Exists(consts.TokenBlacklistKey+sig))
	assert.True(t, mr.TTL(consts.TokenBlacklistKey+sig) > 0)

	assert.ErrorIs(t, svc.Logout(ctx, "garbage"), ErrUnauthorized)
}

func TestUserService_RegisterValidation(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewUserService(newRepos(db).user)

	_, err := svc.Register(testutil.Ctx(), &dto.RegisterDTO{Username: "ab", Password: "secret123"})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))

	_, err = svc.Register(testutil.Ctx(), &dto.RegisterDTO{Username: "valid", Password: "123"})
	assert.True(t, errors.As(err, &verrs))
}

func TestUserService_GetUserInfo(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewUserService(newRepos(db).user)
	leo := testutil.CreateUser(t, db, "leo")

	info, err := svc.GetUserInfo(testutil.Ctx(), leo.ID)
	require.NoError(t, err)
	assert.Equal(t, "leo", info.Username)

	_, err = svc.GetUserInfo(testutil.Ctx(), leo.ID+1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
