// Package storage persiste los bytes subidos en el sistema de archivos local.
package storage

import (
	"io"
	"os"
	"path/filepath"
)

const filesSubdir = "files"

// DiskStorage escribe y borra archivos bajo un directorio raíz configurable.
// Las fotos de perfil van en la raíz y los archivos del repositorio en files/.
type DiskStorage struct {
	root string
}

// NewDiskStorage crea los directorios de upload antes de que el servidor
// acepte requests.
func NewDiskStorage(root string) (*DiskStorage, error) {
	if root == "" {
		root = "uploads"
	}
	for _, dir := range []string{root, filepath.Join(root, filesSubdir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &DiskStorage{root: root}, nil
}

// SaveFile guarda contenido del repositorio y devuelve la ruta persistida.
func (d *DiskStorage) SaveFile(name string, content io.Reader) (string, error) {
	return d.save(filepath.Join(d.root, filesSubdir, name), content)
}

// SavePicture guarda una foto de perfil bajo la raíz de uploads.
func (d *DiskStorage) SavePicture(name string, content io.Reader) (string, error) {
	return d.save(filepath.Join(d.root, name), content)
}

// Remove borra los bytes de una ruta devuelta por SaveFile/SavePicture.
func (d *DiskStorage) Remove(path string) error {
	return os.Remove(path)
}

func (d *DiskStorage) save(path string, content io.Reader) (string, error) {
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
