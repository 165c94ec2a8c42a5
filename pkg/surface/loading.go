package surface

const (
	ClassLoading     = "loading"
	StylePointerMode = "pointer-events"
)

// ShowLoading marks el busy and stops it from receiving pointer input.
func ShowLoading(el *Element) {
	el.AddClass(ClassLoading)
	el.SetStyle(StylePointerMode, "none")
}

// HideLoading reverses ShowLoading.
func HideLoading(el *Element) {
	el.RemoveClass(ClassLoading)
	el.SetStyle(StylePointerMode, "auto")
}
