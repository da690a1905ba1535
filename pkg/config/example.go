// example.go — Sample config written by `textsynth init`.
package config

// ExampleYAML returns a commented starter config.yaml.
func ExampleYAML() string {
	return `# textsynth configuration
paths:
  corpus_dir: data/corpus           # *.txt and *.docx files
  fonts_dir: data/fonts             # *.ttf and *.otf files
  backgrounds_dir: data/backgrounds # *.jpg, *.jpeg and *.png files
  output_dir: output                # images/ and labels.csv go here

dataset:
  num_images: 1000
  word_count_range: [1, 5]
  seed: 0          # 0 picks a time-based seed
  workers: 4
  on_error: skip   # skip | abort

text:
  font_size_range: [24, 64]
  padding: {left: 10, top: 10, right: 10, bottom: 10}
  color:
    enabled: false
    rgb_range: [0, 90]
    fixed: "#000000"

augmentations:
  warp:
    enabled: true
    magnitude: 4
  tilt:
    enabled: true
    angle_range: [-8, 8]
  blur:
    enabled: true
    kernel_size_range: [1, 5]
  noise:
    enabled: true
    type: "salt & pepper"
    amount_range: [0.0, 0.02]
  brightness_contrast:
    enabled: true
    brightness_range: [-0.15, 0.15]
    contrast_range: [0.8, 1.2]
`
}
