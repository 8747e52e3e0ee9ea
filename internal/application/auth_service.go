package application

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Maxito7/barberias_backend/internal/domain"
	"github.com/Maxito7/barberias_backend/internal/email"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL es la vigencia de los tokens emitidos
const TokenTTL = 24 * time.Hour

// ErrDemasiadosIntentos se retorna cuando un username excede la ventana de
// intentos de login permitidos
var ErrDemasiadosIntentos = errors.New("demasiados intentos de login, intenta de nuevo más tarde")

// AuthService emite y verifica tokens y administra cuentas de usuario
type AuthService struct {
	usuarioRepo  domain.UsuarioRepository
	jwtSecret    []byte
	validator    Validator
	loginLimiter *RateLimiter
	emailClient  *email.Client // nil desactiva el correo de bienvenida
}

// NewAuthService crea una nueva instancia del servicio de autenticación
func NewAuthService(usuarioRepo domain.UsuarioRepository, jwtSecret string, loginLimiter *RateLimiter, emailClient *email.Client) *AuthService {
	return &AuthService{
		usuarioRepo:  usuarioRepo,
		jwtSecret:    []byte(jwtSecret),
		loginLimiter: loginLimiter,
		emailClient:  emailClient,
	}
}

// Registro valida y crea una cuenta nueva
func (s *AuthService) Registro(username, emailAddr, password, nombreCompleto, telefono string) (*domain.Usuario, error) {
	if err := s.validator.ValidateRequired(username, "username"); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateRequired(nombreCompleto, "nombre_completo"); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateEmail(emailAddr); err != nil {
		return nil, err
	}
	if err := s.validator.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error al generar hash de password: %w", err)
	}

	usuario := &domain.Usuario{
		Username:       username,
		Email:          emailAddr,
		PasswordHash:   string(hash),
		NombreCompleto: nombreCompleto,
		Telefono:       telefono,
		Activo:         true,
	}

	if err := s.usuarioRepo.Create(usuario); err != nil {
		return nil, err
	}

	if s.emailClient != nil {
		// Mejor esfuerzo: un SMTP caído no bloquea el registro
		go func(to, nombre string) {
			if err := s.emailClient.SendBienvenida(to, nombre); err != nil {
				log.Printf("Error al enviar correo de bienvenida: %v", err)
			}
		}(usuario.Email, usuario.NombreCompleto)
	}

	return usuario, nil
}

// Login verifica credenciales y emite un token firmado de 24 horas
func (s *AuthService) Login(username, password string) (string, *domain.Usuario, error) {
	if s.loginLimiter != nil && !s.loginLimiter.Allow(username) {
		return "", nil, ErrDemasiadosIntentos
	}

	usuario, err := s.usuarioRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
		}
		return "", nil, err
	}

	if !usuario.Activo {
		return "", nil, fmt.Errorf("%w: la cuenta está desactivada", domain.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}

	if err := s.usuarioRepo.TouchUltimoAcceso(usuario.ID); err != nil {
		log.Printf("Error al actualizar ultimo_acceso: %v", err)
	}
	ahora := time.Now()
	usuario.UltimoAcceso = &ahora

	token, err := s.emitirToken(usuario.ID)
	if err != nil {
		return "", nil, err
	}

	if s.loginLimiter != nil {
		s.loginLimiter.Reset(username)
	}

	return token, usuario, nil
}

func (s *AuthService) emitirToken(usuarioID int) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"usuario_id": usuarioID,
		"iat":        now.Unix(),
		"exp":        now.Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("error al firmar token: %w", err)
	}
	return signed, nil
}

// VerificarToken valida firma y vigencia y retorna el id de usuario contenido.
// Distingue un token expirado de uno malformado o con firma inválida.
func (s *AuthService) VerificarToken(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, domain.ErrTokenExpirado
		}
		return 0, domain.ErrTokenInvalido
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, domain.ErrTokenInvalido
	}

	rawID, ok := claims["usuario_id"].(float64)
	if !ok {
		return 0, domain.ErrTokenInvalido
	}

	return int(rawID), nil
}

// Perfil retorna la cuenta del usuario autenticado
func (s *AuthService) Perfil(usuarioID int) (*domain.Usuario, error) {
	return s.usuarioRepo.FindByID(usuarioID)
}

// ActualizarPerfil actualiza nombre completo, teléfono y email del usuario
func (s *AuthService) ActualizarPerfil(usuarioID int, nombreCompleto, telefono, emailAddr string) (*domain.Usuario, error) {
	if err := s.validator.ValidateRequired(nombreCompleto, "nombre_completo"); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateEmail(emailAddr); err != nil {
		return nil, err
	}

	if err := s.usuarioRepo.UpdatePerfil(usuarioID, nombreCompleto, telefono, emailAddr); err != nil {
		return nil, err
	}

	return s.usuarioRepo.FindByID(usuarioID)
}

// CambiarPassword verifica el password actual y persiste el nuevo
func (s *AuthService) CambiarPassword(usuarioID int, passwordActual, passwordNuevo string) error {
	usuario, err := s.usuarioRepo.FindByID(usuarioID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(passwordActual)); err != nil {
		return fmt.Errorf("%w: el password actual es incorrecto", domain.ErrUnauthorized)
	}

	if err := s.validator.ValidatePassword(passwordNuevo); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passwordNuevo), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error al generar hash de password: %w", err)
	}

	return s.usuarioRepo.UpdatePassword(usuarioID, string(hash))
}

// MisCalificaciones retorna las calificaciones del usuario autenticado
func (s *AuthService) MisCalificaciones(usuarioID int) ([]domain.CalificacionConBarberia, error) {
	return s.usuarioRepo.CalificacionesDeUsuario(usuarioID)
}
