package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	UserTypeTrainee      = "trainee"
	UserTypeTrainer      = "trainer"
	UserTypeAdmin        = "admin"
	UserTypePendingTutor = "pendingTutor"
)

// niveles CEFR que usan TCF/TEF
var LanguageLevels = []string{"A1", "A2", "B1", "B2", "C1", "C2"}

func ValidUserType(t string) bool {
	switch t {
	case UserTypeTrainee, UserTypeTrainer, UserTypeAdmin, UserTypePendingTutor:
		return true
	}
	return false
}

func ValidLanguageLevel(l string) bool {
	for _, lvl := range LanguageLevels {
		if lvl == l {
			return true
		}
	}
	return false
}

type User struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username      string             `json:"username" bson:"username"`
	Email         string             `json:"email" bson:"email"`
	PasswordHash  string             `json:"-" bson:"passwordHash"`
	ProfileImage  string             `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
	UserType      string             `json:"userType" bson:"userType"`
	LanguageLevel string             `json:"languageLevel" bson:"languageLevel"`
	// skill -> mejor porcentaje obtenido (reading, writing, ...)
	Progress  map[string]float64 `json:"progress" bson:"progress"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
