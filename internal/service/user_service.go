package service

import (
	"Yatube/internal/api/dto"
	"Yatube/internal/model"
	"Yatube/internal/pkg/consts"
	"Yatube/internal/pkg/redis"
	"Yatube/internal/pkg/security"
	"Yatube/internal/pkg/util"
	"Yatube/internal/repository"
	"context"
	"strings"
)

type UserService interface {
	Register(ctx context.Context, dto *dto.RegisterDTO) (*dto.UserDTO, error)
	Login(ctx context.Context, dto *dto.CredentialDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) (*dto.UserDTO, error) {
	regDTO.Username = strings.TrimSpace(regDTO.Username)
	if err := util.ValidateDTO(regDTO); err != nil {
		return nil, err
	}

	findUser, err := s.userRepo.GetUserByUsername(ctx, regDTO.Username)
	if err != nil {
		return nil, storeErr(err)
	}
	if findUser != nil {
		return nil, ErrUserExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username: regDTO.Username,
		Password: passwordHash,
	}
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, storeErr(err)
	}
	return toUserDTO(user), nil
}

func (s *UserServiceImpl) Login(ctx context.Context, credDTO *dto.CredentialDTO) (*dto.TokenDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, strings.TrimSpace(credDTO.Username))
	if err != nil {
		return nil, storeErr(err)
	}
	// 用户不存在与密码错误返回同一错误
	if user == nil {
		return nil, ErrPasswordIncorrect
	}
	if err = security.CheckPasswordHash(credDTO.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID, user.Roles())
	if err != nil {
		return nil, err
	}
	return &dto.TokenDTO{Token: token}, nil
}

// Logout 将 Token 签名加入黑名单，有效期与 Token 剩余时间一致
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := security.ValidateToken(token)
	if err != nil {
		return ErrUnauthorized
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrUnauthorized
	}
	ttl := security.RemainingTTL(claims)
	if ttl <= 0 {
		return nil
	}
	if err = redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, true, ttl); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserDTO(user), nil
}
