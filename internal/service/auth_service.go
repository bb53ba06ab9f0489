package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/events"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users     UserStore
	events    EventPublisher
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

type RegisterUserData struct {
	Username      string
	Email         string
	Password      string
	UserType      string
	LanguageLevel string
}

// UpdateProfileData: lo que el propio usuario puede cambiar.
type UpdateProfileData struct {
	Username      *string
	Email         *string
	Password      *string
	ProfileImage  *string
	LanguageLevel *string
}

// AdminUpdateData: lo que solo un admin puede cambiar.
type AdminUpdateData struct {
	UserType      *string
	LanguageLevel *string
}

func NewAuthService(users UserStore, pub EventPublisher, secret string, tokenTTL time.Duration) *AuthService {
	if pub == nil {
		pub = nopPublisher{}
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		events:    pub,
		jwtSecret: []byte(secret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ================== REGISTER & LOGIN ==================

// Register crea un usuario nuevo. Solo se permite trainee o pendingTutor;
// trainer y admin se asignan desde el panel admin.
func (s *AuthService) Register(ctx context.Context, data RegisterUserData) (*models.User, error) {
	email := normalizeEmail(data.Email)
	username := strings.TrimSpace(data.Username)

	if len(username) < 3 || strings.ContainsAny(username, " @") {
		return nil, invalid("username must have at least 3 characters, no spaces or @")
	}
	if !strings.Contains(email, "@") {
		return nil, invalid("email is not valid")
	}
	if len(data.Password) < 6 {
		return nil, invalid("password must have at least 6 characters")
	}

	userType := data.UserType
	if userType == "" {
		userType = models.UserTypeTrainee
	}
	if userType != models.UserTypeTrainee && userType != models.UserTypePendingTutor {
		return nil, invalid("userType must be trainee|pendingTutor")
	}

	level := data.LanguageLevel
	if level == "" {
		level = models.LanguageLevels[0]
	}
	if !models.ValidLanguageLevel(level) {
		return nil, invalid("languageLevel must be one of A1..C2")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	existing, err = s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	u := &models.User{
		ID:            primitive.NewObjectID(),
		Username:      username,
		Email:         email,
		PasswordHash:  string(hash),
		UserType:      userType,
		LanguageLevel: level,
		Progress:      map[string]float64{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.users.Insert(ctx, u); err != nil {
		// carrera con otro registro: el índice único decide
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, s.whichTaken(ctx, email)
		}
		return nil, err
	}

	publish(ctx, s.events, events.UserRegistered, map[string]any{
		"userId":   u.ID.Hex(),
		"userType": u.UserType,
	})
	return u, nil
}

func (s *AuthService) whichTaken(ctx context.Context, email string) error {
	if u, err := s.users.FindByEmail(ctx, email); err == nil && u != nil {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

// Login acepta email o username.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, *models.User, error) {
	var (
		u   *models.User
		err error
	)
	if strings.Contains(identifier, "@") {
		u, err = s.users.FindByEmail(ctx, normalizeEmail(identifier))
	} else {
		u, err = s.users.FindByUsername(ctx, strings.TrimSpace(identifier))
	}
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *AuthService) issueToken(u *models.User) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.ID.Hex(),
		"role": u.UserType,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

// ================== PERFIL ==================

func (s *AuthService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// UpdateProfile actualiza campos opcionales del propio usuario.
func (s *AuthService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, data UpdateProfileData) (*models.User, error) {
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	update := map[string]any{}

	if data.Email != nil {
		email := normalizeEmail(*data.Email)
		if !strings.Contains(email, "@") {
			return nil, invalid("email is not valid")
		}
		if email != u.Email {
			existing, err := s.users.FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != userID {
				return nil, ErrEmailTaken
			}
			update["email"] = email
		}
	}

	if data.Username != nil {
		username := strings.TrimSpace(*data.Username)
		if len(username) < 3 || strings.ContainsAny(username, " @") {
			return nil, invalid("username must have at least 3 characters, no spaces or @")
		}
		if username != u.Username {
			existing, err := s.users.FindByUsername(ctx, username)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != userID {
				return nil, ErrUsernameTaken
			}
			update["username"] = username
		}
	}

	if data.Password != nil {
		if len(*data.Password) < 6 {
			return nil, invalid("password must have at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*data.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		update["passwordHash"] = string(hash)
	}

	if data.ProfileImage != nil {
		update["profileImage"] = strings.TrimSpace(*data.ProfileImage)
	}

	if data.LanguageLevel != nil {
		if !models.ValidLanguageLevel(*data.LanguageLevel) {
			return nil, invalid("languageLevel must be one of A1..C2")
		}
		update["languageLevel"] = *data.LanguageLevel
	}

	if len(update) == 0 {
		return u, nil
	}
	return s.apply(ctx, userID, update)
}

// AdminUpdateUser cambia tipo de usuario / nivel (solo admin).
func (s *AuthService) AdminUpdateUser(ctx context.Context, userID primitive.ObjectID, data AdminUpdateData) (*models.User, error) {
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	update := map[string]any{}
	if data.UserType != nil {
		if !models.ValidUserType(*data.UserType) {
			return nil, invalid("userType must be trainee|trainer|admin|pendingTutor")
		}
		update["userType"] = *data.UserType
	}
	if data.LanguageLevel != nil {
		if !models.ValidLanguageLevel(*data.LanguageLevel) {
			return nil, invalid("languageLevel must be one of A1..C2")
		}
		update["languageLevel"] = *data.LanguageLevel
	}
	if len(update) == 0 {
		return nil, invalid("no fields to update")
	}
	return s.apply(ctx, userID, update)
}

func (s *AuthService) apply(ctx context.Context, userID primitive.ObjectID, update map[string]any) (*models.User, error) {
	update["updatedAt"] = s.now().UTC()
	if err := s.users.UpdateByID(ctx, userID, update); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, fmt.Errorf("%w: email or username", ErrConflict)
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.GetUserByID(ctx, userID)
}

func (s *AuthService) ListUsers(ctx context.Context, userType, q string, limit, offset int) ([]models.User, error) {
	return s.users.Search(ctx, userType, q, limit, offset)
}

func (s *AuthService) ListTrainers(ctx context.Context, q string, limit, offset int) ([]models.User, error) {
	return s.users.Search(ctx, models.UserTypeTrainer, q, limit, offset)
}
