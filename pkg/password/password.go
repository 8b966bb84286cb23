package password

import "golang.org/x/crypto/bcrypt"

// DefaultCost стоимость bcrypt по умолчанию
const DefaultCost = bcrypt.DefaultCost

// Hash возвращает bcrypt-хэш пароля
func Hash(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify сравнивает хэш и пароль за постоянное время
func Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
