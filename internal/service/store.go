package service

import (
	"nexthire/internal/store"

	"github.com/go-playground/validator/v10"
)

// store 層函式以變數引用，測試時可替換
var (
	getUserByID          = store.GetUserByID
	getUserByEmail       = store.GetUserByEmail
	createUser           = store.CreateUser
	updateUserName       = store.UpdateUserName
	updateUserPassword   = store.UpdateUserPassword
	createResponse       = store.CreateResponse
	countResponsesByRole = store.CountResponsesByRole
	recentResponses      = store.RecentResponses
	listResponses        = store.ListResponses
	getRoadmapByRole     = store.GetRoadmapByRole
	listMCQs             = store.ListMCQs
	listMCQTopics        = store.ListMCQTopics
	getMCQByID           = store.GetMCQByID
	hashPassword         = HashPassword
)

var validate = validator.New()
