// Package secrets looks up service credentials (HF_TOKEN, WANDB_API_KEY)
// from an ordered chain of providers.
//
// The chain used by lrsetup is, in order: the Colab userdata store (only
// when running on Colab), dotenv files in the root dir and the working
// directory, then the process environment. The first provider returning a
// non-empty value wins; a provider error is logged and the chain moves on.
package secrets
