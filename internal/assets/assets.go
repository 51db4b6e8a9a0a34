package assets

import "golang.org/x/image/font/gofont/goregular"

// FontTTF is the UI font, Go Regular from golang.org/x/image.
var FontTTF = goregular.TTF
