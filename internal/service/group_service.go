package service

import (
	"Yatube/internal/api/dto"
	"Yatube/internal/model"
	"Yatube/internal/pkg/util"
	"Yatube/internal/repository"
	"context"
	"strings"
)

type GroupService interface {
	ListGroups(ctx context.Context) ([]*dto.GroupDTO, error)
	CreateGroup(ctx context.Context, in *dto.CreateGroupDTO) (*dto.GroupDTO, error)
}

type groupServiceImpl struct {
	groupRepo repository.GroupRepo
}

func NewGroupService(groupRepo repository.GroupRepo) GroupService {
	return &groupServiceImpl{groupRepo: groupRepo}
}

func (s *groupServiceImpl) ListGroups(ctx context.Context) ([]*dto.GroupDTO, error) {
	groups, err := s.groupRepo.ListGroups(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]*dto.GroupDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroupDTO(g))
	}
	return out, nil
}

// CreateGroup slug 全局唯一
func (s *groupServiceImpl) CreateGroup(ctx context.Context, in *dto.CreateGroupDTO) (*dto.GroupDTO, error) {
	in.Slug = strings.TrimSpace(in.Slug)
	in.Title = strings.TrimSpace(in.Title)
	if err := util.ValidateDTO(in); err != nil {
		return nil, err
	}

	exist, err := s.groupRepo.GetGroupBySlug(ctx, in.Slug)
	if err != nil {
		return nil, storeErr(err)
	}
	if exist != nil {
		return nil, ErrGroupSlugExist
	}

	group := &model.Group{
		Title:       strings.TrimSpace(in.Title),
		Slug:        in.Slug,
		Description: strings.TrimSpace(in.Description),
	}
	if err = s.groupRepo.CreateGroup(ctx, group); err != nil {
		return nil, storeErr(err)
	}
	return toGroupDTO(group), nil
}
