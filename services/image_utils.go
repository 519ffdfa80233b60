package services

import "github.com/disintegration/imaging"

func GetImageDimensions(filePath string) (int, int, error) {
	img, err := imaging.Open(filePath)
	if err != nil {
		return 0, 0, err
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}
