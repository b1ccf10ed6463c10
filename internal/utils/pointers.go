package utils

func IntPtr(i int) *int {
	return &i
}

func PtrInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
